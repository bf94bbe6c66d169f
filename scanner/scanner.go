// Package scanner implements the lexical analyzer that turns Lox source text
// into a stream of tokens, one at a time, on demand.
package scanner

import (
	"github.com/loxvm/loxvm/token"
)

// Scanner produces tokens lazily from a source string. It never copies a
// lexeme: every Token it returns borrows a substring of source, so a
// Scanner (and any Token it has produced) must not outlive source.
type Scanner struct {
	source string
	start  int // byte offset where the token under construction begins
	cur    int // byte offset of the scanner's cursor
	line   int
}

// New creates a Scanner over source, starting at line 1.
func New(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// ScanToken returns the next token in the source, advancing the scanner.
// Once Eof is returned, further calls keep returning Eof.
func (s *Scanner) ScanToken() token.Token {
	s.skipWhitespaceAndComments()
	s.start = s.cur

	if s.atEnd() {
		return s.make(token.Eof)
	}

	c := s.advance()

	if isAlpha(c) {
		return s.identifier()
	}
	if isDigit(c) {
		return s.number()
	}

	switch c {
	case '(':
		return s.make(token.LeftParen)
	case ')':
		return s.make(token.RightParen)
	case '{':
		return s.make(token.LeftBrace)
	case '}':
		return s.make(token.RightBrace)
	case ';':
		return s.make(token.Semicolon)
	case ',':
		return s.make(token.Comma)
	case '.':
		return s.make(token.Dot)
	case '-':
		return s.make(token.Minus)
	case '+':
		return s.make(token.Plus)
	case '/':
		return s.make(token.Slash)
	case '*':
		return s.make(token.Star)
	case '!':
		return s.make(s.choose('=', token.BangEqual, token.Bang))
	case '=':
		return s.make(s.choose('=', token.EqualEqual, token.Equal))
	case '<':
		return s.make(s.choose('=', token.LessEqual, token.Less))
	case '>':
		return s.make(s.choose('=', token.GreaterEqual, token.Greater))
	case '"':
		return s.stringLiteral()
	}

	return s.errorToken("Unexpected character")
}

func (s *Scanner) atEnd() bool {
	return s.cur >= len(s.source)
}

func (s *Scanner) advance() byte {
	c := s.source[s.cur]
	s.cur++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.cur]
}

func (s *Scanner) peekNext() byte {
	if s.cur+1 >= len(s.source) {
		return 0
	}
	return s.source[s.cur+1]
}

// choose advances past expected and returns matched if the cursor sits on
// expected, otherwise leaves the cursor alone and returns unmatched.
func (s *Scanner) choose(expected byte, matched, unmatched token.Kind) token.Kind {
	if s.atEnd() || s.source[s.cur] != expected {
		return unmatched
	}
	s.cur++
	return matched
}

func (s *Scanner) skipWhitespaceAndComments() {
	for !s.atEnd() {
		switch s.peek() {
		case ' ', '\t', '\r':
			s.cur++
		case '\n':
			s.line++
			s.cur++
		case '/':
			if s.peekNext() == '/' {
				for !s.atEnd() && s.peek() != '\n' {
					s.cur++
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (s *Scanner) stringLiteral() token.Token {
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.cur++
	}
	if s.atEnd() {
		return s.errorToken("Unterminated string")
	}
	s.cur++ // closing quote
	return s.make(token.String)
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.cur++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.cur++ // consume '.'
		for isDigit(s.peek()) {
			s.cur++
		}
	}
	return s.make(token.Number)
}

func (s *Scanner) identifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.cur++
	}
	lexeme := s.source[s.start:s.cur]
	if kind, ok := token.Keywords[lexeme]; ok {
		return s.make(kind)
	}
	return s.make(token.Identifier)
}

func (s *Scanner) make(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Lexeme: s.source[s.start:s.cur], Line: s.line}
}

func (s *Scanner) errorToken(message string) token.Token {
	return token.Token{Kind: token.Error, Lexeme: message, Line: s.line}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
