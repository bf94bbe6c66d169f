package scanner

import (
	"strings"
	"testing"

	"github.com/loxvm/loxvm/token"
)

func collect(source string) []token.Token {
	sc := New(source)
	var toks []token.Token
	for {
		tok := sc.ScanToken()
		toks = append(toks, tok)
		if tok.Kind == token.Eof {
			return toks
		}
	}
}

func TestScanTokenKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"punctuation", "(){};,.", []token.Kind{
			token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
			token.Semicolon, token.Comma, token.Dot, token.Eof,
		}},
		{"one or two char operators", "! != = == < <= > >=", []token.Kind{
			token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
			token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.Eof,
		}},
		{"number", "123 45.6 7.", []token.Kind{token.Number, token.Number, token.Number, token.Dot, token.Eof}},
		{"identifier vs keyword", "foo and while bar_2", []token.Kind{
			token.Identifier, token.And, token.While, token.Identifier, token.Eof,
		}},
		{"comment skipped", "1 // trailing comment\n2", []token.Kind{token.Number, token.Number, token.Eof}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := collect(tt.src)
			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d", len(toks), toks, len(tt.want))
			}
			for i, tok := range toks {
				if tok.Kind != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, tok.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestStringLiteralIncludesQuotesAndCountsNewlines(t *testing.T) {
	sc := New("\"a\nb\" 2")
	tok := sc.ScanToken()
	if tok.Kind != token.String || tok.Lexeme != "\"a\nb\"" {
		t.Fatalf("got %v %q, want String %q", tok.Kind, tok.Lexeme, "\"a\nb\"")
	}
	next := sc.ScanToken()
	if next.Line != 2 {
		t.Errorf("line after embedded newline = %d, want 2", next.Line)
	}
}

func TestUnterminatedStringIsErrorToken(t *testing.T) {
	sc := New("\"abc")
	tok := sc.ScanToken()
	if tok.Kind != token.Error || tok.Lexeme != "Unterminated string" {
		t.Fatalf("got %v %q, want Error %q", tok.Kind, tok.Lexeme, "Unterminated string")
	}
}

func TestUnexpectedCharacterIsErrorToken(t *testing.T) {
	sc := New("@")
	tok := sc.ScanToken()
	if tok.Kind != token.Error || tok.Lexeme != "Unexpected character" {
		t.Fatalf("got %v %q, want Error %q", tok.Kind, tok.Lexeme, "Unexpected character")
	}
}

func TestEndsWithSingleEofAndLexemesAreSubstrings(t *testing.T) {
	source := "var x = 1 + 2;"
	toks := collect(source)
	if toks[len(toks)-1].Kind != token.Eof {
		t.Fatalf("last token is %v, want Eof", toks[len(toks)-1].Kind)
	}
	eofCount := 0
	for _, tok := range toks {
		if tok.Kind == token.Eof {
			eofCount++
		}
	}
	if eofCount != 1 {
		t.Errorf("Eof appears %d times, want exactly once", eofCount)
	}
	pos := 0
	for _, tok := range toks {
		idx := strings.Index(source[pos:], tok.Lexeme)
		if idx < 0 {
			t.Fatalf("lexeme %q is not a substring of the source at or after offset %d", tok.Lexeme, pos)
		}
		pos += idx
	}
}

func TestTrailingDotWithoutDigitIsNotPartOfNumber(t *testing.T) {
	toks := collect("7.")
	if toks[0].Kind != token.Number || toks[0].Lexeme != "7" {
		t.Fatalf("got %v %q, want Number \"7\"", toks[0].Kind, toks[0].Lexeme)
	}
	if toks[1].Kind != token.Dot {
		t.Fatalf("got %v, want Dot", toks[1].Kind)
	}
}
