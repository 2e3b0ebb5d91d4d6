// Package syntax provides per-line lexical scanning for the editor.
//
// Scanning is line-oriented: each line is tokenized independently given
// the state the previous line ended in, so edits only force recomputation
// of the lines whose entry state actually changed.
package syntax

// TokenType classifies a span of characters for styling.
type TokenType uint8

// Token types produced by the scanner.
const (
	TokenNormal TokenType = iota
	TokenKeyword
	TokenString
	TokenComment
	TokenNumber
	TokenTypeName
	TokenFunction
	TokenOperator
	TokenPunctuation
	TokenAttribute
	TokenMacro
	TokenLifetime

	tokenTypeCount
)

// tokenTypeNames maps token types to their string names.
var tokenTypeNames = [...]string{
	TokenNormal:      "normal",
	TokenKeyword:     "keyword",
	TokenString:      "string",
	TokenComment:     "comment",
	TokenNumber:      "number",
	TokenTypeName:    "type",
	TokenFunction:    "function",
	TokenOperator:    "operator",
	TokenPunctuation: "punctuation",
	TokenAttribute:   "attribute",
	TokenMacro:       "macro",
	TokenLifetime:    "lifetime",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// Span is a half-open run of characters [Start, End) on a single line
// sharing one token type. Offsets are rune indices into the line.
type Span struct {
	Start int
	End   int
	Type  TokenType
}

// Len returns the number of runes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether the rune index falls inside the span.
func (s Span) Contains(col int) bool {
	return col >= s.Start && col < s.End
}

// ExitState is the scanner state carried from one line into the next.
// Block comments are the only construct that crosses line boundaries.
type ExitState uint8

const (
	// StateNormal means the line ended outside any multi-line construct.
	StateNormal ExitState = iota

	// StateBlockComment means the line ended inside an unterminated
	// block comment; the next line starts in comment context.
	StateBlockComment
)

// String returns the string representation of an exit state.
func (s ExitState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateBlockComment:
		return "block-comment"
	default:
		return "unknown"
	}
}
