package syntax

import "unicode"

const (
	operatorChars    = "=+-*/<>!&|^%~?:"
	punctuationChars = "(){}[];,.@"
)

// Tokenize scans a single line and returns the spans covering it plus the
// state the line ends in. It is a pure function: the same (line, state,
// profile) always yields the same result, and no inputs are mutated.
//
// The returned spans partition [0, len(line)) with no gaps or overlaps.
// Offsets are rune indices; converting to visual columns is the caller's
// concern. A nil profile yields one normal span over the whole line.
func Tokenize(line []rune, state ExitState, p *Profile) ([]Span, ExitState) {
	n := len(line)
	if p == nil {
		if n == 0 {
			return nil, StateNormal
		}
		return []Span{{Start: 0, End: n, Type: TokenNormal}}, StateNormal
	}

	var sb spanBuilder
	bcStart := []rune(p.BlockCommentStart)
	bcEnd := []rune(p.BlockCommentEnd)
	lc := []rune(p.LineComment)

	i := 0
	inBlock := state == StateBlockComment
	for i < n {
		if inBlock {
			if len(bcEnd) > 0 && hasPrefixAt(line, i, bcEnd) {
				sb.emit(i, i+len(bcEnd), TokenComment)
				i += len(bcEnd)
				inBlock = false
			} else {
				sb.emit(i, i+1, TokenComment)
				i++
			}
			continue
		}

		if len(bcStart) > 0 && hasPrefixAt(line, i, bcStart) {
			sb.emit(i, i+len(bcStart), TokenComment)
			i += len(bcStart)
			inBlock = true
			continue
		}

		if len(lc) > 0 && hasPrefixAt(line, i, lc) {
			sb.emit(i, n, TokenComment)
			i = n
			break
		}

		switch {
		case line[i] == '"':
			i = scanQuoted(line, i, '"', &sb)
			continue
		case line[i] == '\'':
			if p.HasLifetimes && i+1 < n && unicode.IsLetter(line[i+1]) {
				if end, ok := scanLifetime(line, i, &sb); ok {
					i = end
					continue
				}
			}
			i = scanQuoted(line, i, '\'', &sb)
			continue
		case line[i] == '`':
			i = scanQuoted(line, i, '`', &sb)
			continue
		}

		if p.HasMacros && line[i] == '#' && i+1 < n && (line[i+1] == '[' || line[i+1] == '!') {
			start := i
			for i < n && line[i] != ']' {
				i++
			}
			if i < n {
				i++ // closing bracket
			}
			sb.emit(start, i, TokenAttribute)
			continue
		}

		if isNumberStart(line, i) {
			start := i
			for i < n && isNumberRune(line[i]) {
				i++
			}
			sb.emit(start, i, TokenNumber)
			continue
		}

		if unicode.IsLetter(line[i]) || line[i] == '_' {
			start := i
			for i < n && (unicode.IsLetter(line[i]) || unicode.IsDigit(line[i]) || line[i] == '_') {
				i++
			}
			word := string(line[start:i])

			if p.HasMacros && i < n && line[i] == '!' {
				i++ // the bang belongs to the invocation
				sb.emit(start, i, TokenMacro)
				continue
			}

			tt := TokenNormal
			switch {
			case p.IsKeyword(word):
				tt = TokenKeyword
			case p.IsType(word):
				tt = TokenTypeName
			case i < n && line[i] == '(':
				tt = TokenFunction
			case unicode.IsUpper(line[start]):
				tt = TokenTypeName // PascalCase reads as a type
			}
			sb.emit(start, i, tt)
			continue
		}

		if runeInSet(line[i], operatorChars) {
			sb.emit(i, i+1, TokenOperator)
			i++
			continue
		}

		if runeInSet(line[i], punctuationChars) {
			sb.emit(i, i+1, TokenPunctuation)
			i++
			continue
		}

		sb.emit(i, i+1, TokenNormal)
		i++
	}

	exit := StateNormal
	if inBlock {
		exit = StateBlockComment
	}
	return sb.spans, exit
}

// scanQuoted consumes a quoted literal starting at i (which holds the
// opening quote). Backslash escapes the following rune. The literal ends
// at the closing quote or at end of line; strings never continue onto
// the next line.
func scanQuoted(line []rune, i int, quote rune, sb *spanBuilder) int {
	start := i
	i++ // opening quote
	for i < len(line) {
		ch := line[i]
		i++
		if ch == '\\' && i < len(line) {
			i++
		} else if ch == quote {
			break
		}
	}
	sb.emit(start, i, TokenString)
	return i
}

// scanLifetime tries to consume a lifetime annotation like 'a or 'static.
// A quote followed by a long word and a closing quote reads as a character
// literal instead, in which case nothing is emitted.
func scanLifetime(line []rune, i int, sb *spanBuilder) (int, bool) {
	start := i
	i++ // the quote
	wordStart := i
	for i < len(line) && (unicode.IsLetter(line[i]) || unicode.IsDigit(line[i]) || line[i] == '_') {
		i++
	}
	if i < len(line) && line[i] == '\'' && i-wordStart > 10 {
		return start, false
	}
	sb.emit(start, i, TokenLifetime)
	return i, true
}

func isNumberStart(line []rune, i int) bool {
	if isASCIIDigit(line[i]) {
		return true
	}
	// A leading dot starts a number only after a non-word boundary.
	if line[i] == '.' && i+1 < len(line) && isASCIIDigit(line[i+1]) {
		return i == 0 || !(unicode.IsLetter(line[i-1]) || unicode.IsDigit(line[i-1]))
	}
	return false
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isNumberRune accepts the characters that may appear inside a numeric
// literal: digits, separators, radix markers and hex digits.
func isNumberRune(r rune) bool {
	switch {
	case isASCIIDigit(r):
		return true
	case r == '.' || r == '_' || r == 'x' || r == 'b' || r == 'o':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}

func hasPrefixAt(line []rune, pos int, pattern []rune) bool {
	if pos+len(pattern) > len(line) {
		return false
	}
	for j, pr := range pattern {
		if line[pos+j] != pr {
			return false
		}
	}
	return true
}

func runeInSet(r rune, set string) bool {
	for _, s := range set {
		if r == s {
			return true
		}
	}
	return false
}

// spanBuilder accumulates spans, merging adjacent runs of the same type
// so the partition stays minimal.
type spanBuilder struct {
	spans []Span
}

func (b *spanBuilder) emit(start, end int, tt TokenType) {
	if end <= start {
		return
	}
	if k := len(b.spans); k > 0 && b.spans[k-1].Type == tt && b.spans[k-1].End == start {
		b.spans[k-1].End = end
		return
	}
	b.spans = append(b.spans, Span{Start: start, End: end, Type: tt})
}
