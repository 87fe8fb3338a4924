// Package parser implements a Pratt (precedence-climbing) recursive-descent
// parser that turns ember source text into the AST node kinds internal/ast
// defines. The evaluator itself never re-parses; this package is the sole
// producer of the trees internal/eval walks.
package parser

import (
	"fmt"

	"github.com/cwbudde/ember/internal/ast"
	"github.com/cwbudde/ember/internal/lexer"
	"github.com/cwbudde/ember/internal/token"
)

// SyntaxError is the only error kind the parser ever raises (the
// evaluator raises everything else). Unsupported marks
// errors for forms the language deliberately omits (default values in
// patterns, module declarations) so the driver can report them under the
// Unsupported kind rather than as a plain syntax error.
type SyntaxError struct {
	Message     string
	Pos         token.Position
	Unsupported bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("SyntaxError: %s (line %d, column %d)", e.Message, e.Pos.Line, e.Pos.Column)
}

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	COMMA
	ASSIGNMENT
	CONDITIONAL
	NULLISH
	LOGICAL_OR
	LOGICAL_AND
	EQUALITY
	RELATIONAL
	ADDITIVE
	MULTIPLICATIVE
	EXPONENT
	UNARY
	POSTFIX
	CALLMEMBER
)

var precedences = map[token.Type]int{
	token.COMMA:          COMMA,
	token.ASSIGN:         ASSIGNMENT,
	token.PLUS_ASSIGN:    ASSIGNMENT,
	token.MINUS_ASSIGN:   ASSIGNMENT,
	token.STAR_ASSIGN:    ASSIGNMENT,
	token.SLASH_ASSIGN:   ASSIGNMENT,
	token.PERCENT_ASSIGN: ASSIGNMENT,
	token.AND_ASSIGN:     ASSIGNMENT,
	token.OR_ASSIGN:      ASSIGNMENT,
	token.NULLISH_ASSIGN: ASSIGNMENT,
	token.QUESTION:       CONDITIONAL,
	token.NULLISH:        NULLISH,
	token.OR:             LOGICAL_OR,
	token.AND:            LOGICAL_AND,
	token.EQ:             EQUALITY,
	token.NOT_EQ:         EQUALITY,
	token.STRICT_EQ:      EQUALITY,
	token.STRICT_NOT_EQ:  EQUALITY,
	token.LT:             RELATIONAL,
	token.GT:             RELATIONAL,
	token.LE:             RELATIONAL,
	token.GE:             RELATIONAL,
	token.INSTANCEOF:     RELATIONAL,
	token.PLUS:           ADDITIVE,
	token.MINUS:          ADDITIVE,
	token.STAR:           MULTIPLICATIVE,
	token.SLASH:          MULTIPLICATIVE,
	token.PERCENT:        MULTIPLICATIVE,
	token.STAR_STAR:      EXPONENT,
	token.LPAREN:         CALLMEMBER,
	token.DOT:            CALLMEMBER,
	token.OPT_CHAIN:      CALLMEMBER,
	token.LBRACKET:       CALLMEMBER,
	token.INCR:           POSTFIX,
	token.DECR:           POSTFIX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes a pre-scanned token stream and builds an AST. Tokens are
// scanned eagerly (rather than pulled lazily from the Lexer one at a time)
// so the parser can checkpoint/restore its cursor — needed to disambiguate
// constructs like `(a, b) => ...` from a plain parenthesized expression
// without a separate grammar pass.
type Parser struct {
	tokens []token.Token
	cursor int // index of curToken within tokens

	curToken  token.Token
	peekToken token.Token

	errors []*SyntaxError

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser over l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{}
	for {
		tok := l.NextToken()
		p.tokens = append(p.tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:         p.parseIdentifier,
		token.NUMBER:        p.parseNumberLiteral,
		token.STRING:        p.parseStringLiteral,
		token.TRUE:          p.parseBoolLiteral,
		token.FALSE:         p.parseBoolLiteral,
		token.NULL:          p.parseNullLiteral,
		token.UNDEFINED:     p.parseUndefinedLiteral,
		token.THIS:          p.parseThisExpression,
		token.SUPER:         p.parseSuperExpression,
		token.BANG:          p.parseUnaryExpression,
		token.MINUS:         p.parseUnaryExpression,
		token.PLUS:          p.parseUnaryExpression,
		token.TYPEOF:        p.parseUnaryExpression,
		token.AWAIT:         p.parseAwaitExpression,
		token.INCR:          p.parsePrefixUpdate,
		token.DECR:          p.parsePrefixUpdate,
		token.LPAREN:        p.parseParenOrArrow,
		token.LBRACKET:      p.parseArrayExpression,
		token.LBRACE:        p.parseObjectExpression,
		token.BACKTICK:      p.parseTemplateLiteral,
		token.FUNCTION:      p.parseFunctionExpression,
		token.ASYNC:         p.parseAsyncPrefix,
		token.NEW:           p.parseNewExpression,
		token.CLASS:         p.parseClassExpression,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS: p.parseBinaryExpression, token.MINUS: p.parseBinaryExpression,
		token.STAR: p.parseBinaryExpression, token.SLASH: p.parseBinaryExpression,
		token.PERCENT: p.parseBinaryExpression, token.STAR_STAR: p.parseBinaryExpression,
		token.EQ: p.parseBinaryExpression, token.NOT_EQ: p.parseBinaryExpression,
		token.STRICT_EQ: p.parseBinaryExpression, token.STRICT_NOT_EQ: p.parseBinaryExpression,
		token.LT: p.parseBinaryExpression, token.GT: p.parseBinaryExpression,
		token.LE: p.parseBinaryExpression, token.GE: p.parseBinaryExpression,
		token.INSTANCEOF: p.parseBinaryExpression,
		token.AND:        p.parseLogicalExpression,
		token.OR:         p.parseLogicalExpression,
		token.NULLISH:    p.parseLogicalExpression,
		token.ASSIGN:         p.parseAssignmentExpression,
		token.PLUS_ASSIGN:    p.parseAssignmentExpression,
		token.MINUS_ASSIGN:   p.parseAssignmentExpression,
		token.STAR_ASSIGN:    p.parseAssignmentExpression,
		token.SLASH_ASSIGN:   p.parseAssignmentExpression,
		token.PERCENT_ASSIGN: p.parseAssignmentExpression,
		token.AND_ASSIGN:     p.parseAssignmentExpression,
		token.OR_ASSIGN:      p.parseAssignmentExpression,
		token.NULLISH_ASSIGN: p.parseAssignmentExpression,
		token.LPAREN:     p.parseCallExpression,
		token.DOT:        p.parseMemberExpression,
		token.OPT_CHAIN:  p.parseMemberExpression,
		token.LBRACKET:   p.parseComputedMemberExpression,
		token.QUESTION:   p.parseConditionalExpression,
		token.INCR:       p.parsePostfixUpdate,
		token.DECR:       p.parsePostfixUpdate,
		token.COMMA:      p.parseSequenceExpression,
	}

	p.cursor = -1
	p.nextToken()
	return p
}

// Errors returns every syntax error observed so far.
func (p *Parser) Errors() []*SyntaxError { return p.errors }

func (p *Parser) tokenAt(i int) token.Token {
	if i < 0 {
		i = 0
	}
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[i]
}

func (p *Parser) nextToken() {
	p.cursor++
	p.curToken = p.tokenAt(p.cursor)
	p.peekToken = p.tokenAt(p.cursor + 1)
}

// checkpoint returns a cursor mark that restore can rewind to.
func (p *Parser) checkpoint() int { return p.cursor }

// restore rewinds the parser to a mark returned by checkpoint, discarding
// any errors recorded since (used for speculative parses, e.g. arrow
// function parameter lists).
func (p *Parser) restore(mark int, errMark int) {
	p.cursor = mark
	p.curToken = p.tokenAt(p.cursor)
	p.peekToken = p.tokenAt(p.cursor + 1)
	p.errors = p.errors[:errMark]
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, &SyntaxError{Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (p *Parser) errorfUnsupported(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, &SyntaxError{Message: fmt.Sprintf(format, args...), Pos: pos, Unsupported: true})
}

func (p *Parser) curIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expect(t token.Type) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken.Pos, "expected next token to be %s, got %s instead", t, p.peekToken.Type)
	return false
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the entire token stream into a *ast.Program. Parse
// errors are collected in Errors(); a non-empty error list means the
// returned tree may be partial.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
		p.nextToken()
	}
	return prog
}

// Parse is a convenience wrapper: lex+parse source, surfacing the first
// syntax error (if any) as a Go error.
func Parse(source string) (*ast.Program, error) {
	p := New(lexer.New(source))
	prog := p.ParseProgram()
	if len(p.errors) > 0 {
		return prog, p.errors[0]
	}
	return prog, nil
}
