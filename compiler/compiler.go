// Package compiler implements the single-pass Pratt (precedence-climbing)
// compiler that turns a token stream directly into bytecode, with no
// intermediate syntax tree.
package compiler

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/loxvm/loxvm/bytecode"
	"github.com/loxvm/loxvm/internal/tracelog"
	"github.com/loxvm/loxvm/scanner"
	"github.com/loxvm/loxvm/token"
)

// Precedence levels, ascending. A binary operator's infix handler parses
// its right-hand operand at one level higher than its own precedence,
// which is what makes equal-precedence operators left-associative.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

type parseFn func(c *Compiler)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules is the parse-rule table: a lookup keyed by token kind yielding the
// prefix/infix handlers and the binding precedence for that kind. Tokens
// absent from this map default to {nil, nil, PrecNone}, meaning they have
// no role as either a prefix or infix expression starter.
var rules = map[token.Kind]parseRule{
	token.LeftParen:    {prefix: (*Compiler).grouping, precedence: PrecCall},
	token.Minus:        {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: PrecTerm},
	token.Plus:         {infix: (*Compiler).binary, precedence: PrecTerm},
	token.Slash:        {infix: (*Compiler).binary, precedence: PrecFactor},
	token.Star:         {infix: (*Compiler).binary, precedence: PrecFactor},
	token.Bang:         {prefix: (*Compiler).unary, precedence: PrecNone},
	token.BangEqual:    {infix: (*Compiler).binary, precedence: PrecEquality},
	token.EqualEqual:   {infix: (*Compiler).binary, precedence: PrecEquality},
	token.Greater:      {infix: (*Compiler).binary, precedence: PrecComparison},
	token.GreaterEqual: {infix: (*Compiler).binary, precedence: PrecComparison},
	token.Less:         {infix: (*Compiler).binary, precedence: PrecComparison},
	token.LessEqual:    {infix: (*Compiler).binary, precedence: PrecComparison},
	token.Number:       {prefix: (*Compiler).number, precedence: PrecNone},
	token.True:         {prefix: (*Compiler).literal, precedence: PrecNone},
	token.False:        {prefix: (*Compiler).literal, precedence: PrecNone},
	token.Nil:          {prefix: (*Compiler).literal, precedence: PrecNone},
}

func getRule(kind token.Kind) parseRule {
	return rules[kind]
}

// Compiler is a one-shot, non-restartable parser: it consumes a Scanner
// over a single source string and emits bytecode into chunk as it goes.
type Compiler struct {
	scanner *scanner.Scanner
	chunk   *bytecode.Chunk

	previous token.Token
	current  token.Token

	hadError  bool
	panicMode bool
	errors    *multierror.Error
}

// Compile scans and parses source as a single expression and returns the
// resulting chunk, or a *CompileError accumulating every diagnostic
// produced along the way.
func Compile(source string) (*bytecode.Chunk, error) {
	c := &Compiler{
		scanner: scanner.New(source),
		chunk:   bytecode.NewChunk(),
	}

	c.advance()
	c.expression()
	c.consume(token.Eof, "Expected end of expression")

	if c.hadError {
		return nil, &CompileError{Message: c.errors.Error()}
	}
	c.emitByte(byte(bytecode.OpReturn))
	return c.chunk, nil
}

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		tok := c.scanner.ScanToken()
		c.current = tok
		if tok.Kind != token.Error {
			break
		}
		c.errorAtCurrent(tok.Lexeme)
	}
	tracelog.Log.Debugf("compiler: advanced to %s", c.current)
}

func (c *Compiler) consume(kind token.Kind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// expression parses a single expression at the lowest real precedence.
func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(precedence Precedence) {
	c.advance()
	rule := getRule(c.previous.Kind)
	if rule.prefix == nil {
		c.errorAtPrevious("Expected expression.")
		return
	}
	rule.prefix(c)

	for precedence <= getRule(c.current.Kind).precedence {
		c.advance()
		infix := getRule(c.previous.Kind).infix
		if infix == nil {
			c.errorAtPrevious("Expected expression.")
			return
		}
		infix(c)
	}
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(token.RightParen, "Expected ')' after expression")
}

func (c *Compiler) literal() {
	switch c.previous.Kind {
	case token.True:
		c.emitByte(byte(bytecode.OpTrue))
	case token.False:
		c.emitByte(byte(bytecode.OpFalse))
	case token.Nil:
		c.emitByte(byte(bytecode.OpNil))
	default:
		c.errorAtPrevious("Invalid literal opcode")
	}
}

func (c *Compiler) number() {
	value, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.errorAtPrevious("Invalid number literal")
		return
	}
	c.emitConstant(bytecode.NewNumber(value))
}

func (c *Compiler) unary() {
	operator := c.previous.Kind
	c.parsePrecedence(PrecUnary)

	switch operator {
	case token.Bang:
		c.emitByte(byte(bytecode.OpNot))
	case token.Minus:
		c.emitByte(byte(bytecode.OpNegate))
	default:
		c.errorAtPrevious("Invalid unary operator")
	}
}

func (c *Compiler) binary() {
	operator := c.previous.Kind
	rule := getRule(operator)
	c.parsePrecedence(rule.precedence + 1)

	switch operator {
	case token.BangEqual:
		c.emitBytes(byte(bytecode.OpEqual), byte(bytecode.OpNot))
	case token.EqualEqual:
		c.emitByte(byte(bytecode.OpEqual))
	case token.Greater:
		c.emitByte(byte(bytecode.OpGreater))
	case token.GreaterEqual:
		c.emitBytes(byte(bytecode.OpLess), byte(bytecode.OpNot))
	case token.Less:
		c.emitByte(byte(bytecode.OpLess))
	case token.LessEqual:
		c.emitBytes(byte(bytecode.OpGreater), byte(bytecode.OpNot))
	case token.Plus:
		c.emitByte(byte(bytecode.OpAdd))
	case token.Minus:
		c.emitByte(byte(bytecode.OpSubtract))
	case token.Star:
		c.emitByte(byte(bytecode.OpMultiply))
	case token.Slash:
		c.emitByte(byte(bytecode.OpDivide))
	default:
		c.errorAtPrevious("Invalid binary operator")
	}
}

func (c *Compiler) currentLine() int {
	return c.previous.Line
}

func (c *Compiler) emitByte(b byte) {
	c.chunk.WriteByte(b, c.currentLine())
}

func (c *Compiler) emitBytes(bs ...byte) {
	for _, b := range bs {
		c.emitByte(b)
	}
}

func (c *Compiler) emitConstant(v bytecode.Value) {
	if err := c.chunk.WriteConstant(v, c.currentLine()); err != nil {
		c.errorAtPrevious(err.Error())
	}
}

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) errorAtPrevious(message string) {
	c.errorAt(c.previous, message)
}

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	var where string
	switch tok.Kind {
	case token.Eof:
		where = " at end"
	case token.Error:
		where = ""
	default:
		where = fmt.Sprintf(" at '%s'", tok.Lexeme)
	}

	report := fmt.Sprintf("[line %d] Error%s: %s", tok.Line, where, message)
	fmt.Fprintln(os.Stderr, report)
	tracelog.Log.Debugln("compiler:", report)
	c.errors = multierror.Append(c.errors, errors.New(report))
}
