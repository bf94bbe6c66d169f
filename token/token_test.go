package token

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{LeftParen, "LeftParen"},
		{BangEqual, "BangEqual"},
		{Eof, "Eof"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKeywordsMatchIdentifiers(t *testing.T) {
	tests := []struct {
		lexeme string
		want   Kind
	}{
		{"and", And},
		{"while", While},
		{"print", Print},
		{"notakeyword", Identifier},
	}
	for _, tt := range tests {
		kind, ok := Keywords[tt.lexeme]
		if tt.want == Identifier {
			if ok {
				t.Errorf("Keywords[%q] unexpectedly present", tt.lexeme)
			}
			continue
		}
		if !ok || kind != tt.want {
			t.Errorf("Keywords[%q] = %v, %v; want %v, true", tt.lexeme, kind, ok, tt.want)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Number, Lexeme: "123", Line: 4}
	got := tok.String()
	want := `Number "123" (line 4)`
	if got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}
