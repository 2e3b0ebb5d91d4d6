package syntax

import (
	"reflect"
	"testing"
)

func rustProfile(t *testing.T) *Profile {
	t.Helper()
	p := DefaultRegistry().ForExtension("rs")
	if p == nil {
		t.Fatal("rust profile not registered")
	}
	return p
}

func checkCoverage(t *testing.T, line []rune, spans []Span) {
	t.Helper()
	pos := 0
	for i, s := range spans {
		if s.Start != pos {
			t.Fatalf("span %d starts at %d, want %d (gap or overlap)", i, s.Start, pos)
		}
		if s.End <= s.Start {
			t.Fatalf("span %d is empty or inverted: %+v", i, s)
		}
		pos = s.End
	}
	if pos != len(line) {
		t.Fatalf("spans cover [0,%d), line has %d runes", pos, len(line))
	}
}

func TestTokenizeCoversEveryLine(t *testing.T) {
	p := rustProfile(t)
	lines := []string{
		"",
		"fn main() {",
		"    let x = 42;",
		"\tlet s = \"hi \\\" there\";",
		"// comment to end",
		"/* open block",
		"still inside */ after",
		"let v: Vec<u8> = vec![1, 0xff, 3.14];",
		"#[derive(Debug)]",
		"fn f<'a>(x: &'a str) {}",
		"日本語 text with wide runes",
	}
	for _, src := range lines {
		line := []rune(src)
		for _, state := range []ExitState{StateNormal, StateBlockComment} {
			spans, _ := Tokenize(line, state, p)
			checkCoverage(t, line, spans)
		}
	}
}

func TestTokenizeIsPure(t *testing.T) {
	p := rustProfile(t)
	line := []rune("let x = compute(41) + 1; // done")
	s1, e1 := Tokenize(line, StateNormal, p)
	s2, e2 := Tokenize(line, StateNormal, p)
	if !reflect.DeepEqual(s1, s2) || e1 != e2 {
		t.Fatalf("repeated scans differ: %v/%v vs %v/%v", s1, e1, s2, e2)
	}
}

func TestTokenizeClassification(t *testing.T) {
	p := rustProfile(t)

	tests := []struct {
		name  string
		line  string
		state ExitState
		want  []Span
		exit  ExitState
	}{
		{
			name: "declaration line",
			line: "fn main() {",
			want: []Span{
				{0, 2, TokenKeyword},     // fn
				{2, 3, TokenNormal},      // space
				{3, 7, TokenFunction},    // main
				{7, 9, TokenPunctuation}, // ()
				{9, 10, TokenNormal},     // space
				{10, 11, TokenPunctuation},
			},
			exit: StateNormal,
		},
		{
			name: "line comment",
			line: "// hello",
			want: []Span{{0, 8, TokenComment}},
			exit: StateNormal,
		},
		{
			name: "closing brace",
			line: "}",
			want: []Span{{0, 1, TokenPunctuation}},
			exit: StateNormal,
		},
		{
			name: "unterminated block comment",
			line: "code /* trailing",
			want: []Span{
				{0, 5, TokenNormal},
				{5, 16, TokenComment},
			},
			exit: StateBlockComment,
		},
		{
			name:  "continuation line closes the comment",
			line:  "still */ let",
			state: StateBlockComment,
			want: []Span{
				{0, 8, TokenComment},
				{8, 9, TokenNormal},
				{9, 12, TokenKeyword},
			},
			exit: StateNormal,
		},
		{
			name:  "continuation line stays inside",
			line:  "no terminator here",
			state: StateBlockComment,
			want:  []Span{{0, 18, TokenComment}},
			exit:  StateBlockComment,
		},
		{
			name: "string with escaped quote",
			line: `x = "a\"b" y`,
			want: []Span{
				{0, 2, TokenNormal},
				{2, 3, TokenOperator},
				{3, 4, TokenNormal},
				{4, 10, TokenString},
				{10, 12, TokenNormal},
			},
			exit: StateNormal,
		},
		{
			name: "macro invocation",
			line: "println!(x)",
			want: []Span{
				{0, 8, TokenMacro},
				{8, 9, TokenPunctuation},
				{9, 10, TokenNormal},
				{10, 11, TokenPunctuation},
			},
			exit: StateNormal,
		},
		{
			name: "attribute",
			line: "#[derive(Debug)]",
			want: []Span{{0, 16, TokenAttribute}},
			exit: StateNormal,
		},
		{
			name: "pascal case reads as type",
			line: "Widget w",
			want: []Span{
				{0, 6, TokenTypeName},
				{6, 8, TokenNormal},
			},
			exit: StateNormal,
		},
		{
			name: "hex number",
			line: "0xff + 3.14",
			want: []Span{
				{0, 4, TokenNumber},
				{4, 5, TokenNormal},
				{5, 6, TokenOperator},
				{6, 7, TokenNormal},
				{7, 11, TokenNumber},
			},
			exit: StateNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := []rune(tt.line)
			spans, exit := Tokenize(line, tt.state, p)
			checkCoverage(t, line, spans)
			if exit != tt.exit {
				t.Errorf("exit = %v, want %v", exit, tt.exit)
			}
			if !reflect.DeepEqual(spans, tt.want) {
				t.Errorf("spans = %v, want %v", spans, tt.want)
			}
		})
	}
}

func TestTokenizeMergesAdjacentSameType(t *testing.T) {
	p := rustProfile(t)
	// Consecutive operators share one span.
	spans, _ := Tokenize([]rune("a += b"), StateNormal, p)
	for i := 1; i < len(spans); i++ {
		if spans[i].Type == spans[i-1].Type {
			t.Fatalf("adjacent spans %d and %d share type %v", i-1, i, spans[i].Type)
		}
	}
}

func TestTokenizeNilProfile(t *testing.T) {
	line := []rune("anything at all")
	spans, exit := Tokenize(line, StateNormal, nil)
	if exit != StateNormal {
		t.Fatalf("exit = %v, want normal", exit)
	}
	want := []Span{{0, len(line), TokenNormal}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans = %v, want %v", spans, want)
	}
	if s, _ := Tokenize(nil, StateNormal, nil); s != nil {
		t.Fatalf("empty line should yield no spans, got %v", s)
	}
}

func TestTokenizeLifetime(t *testing.T) {
	p := rustProfile(t)
	spans, _ := Tokenize([]rune("&'a str"), StateNormal, p)
	found := false
	for _, s := range spans {
		if s.Type == TokenLifetime && s.Start == 1 && s.End == 3 {
			found = true
		}
	}
	if !found {
		t.Fatalf("no lifetime span in %v", spans)
	}
}

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		path string
		want string
	}{
		{"main.rs", "Rust"},
		{"app.TSX", "JavaScript"},
		{"src/lib/util.go", "Go"},
		{"schema.sql", "SQL"},
		{"notes.txt", ""},
		{"Makefile", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p := r.ForPath(tt.path)
			got := ""
			if p != nil {
				got = p.Name
			}
			if got != tt.want {
				t.Errorf("ForPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
