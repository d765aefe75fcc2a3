// Package parser turns a brang token stream into the syntax tree consumed
// by internal/compiler. Expression parsing uses shunting-yard to produce
// postfix (RPN) Expr nodes, so downstream code never has to re-derive
// operator precedence.
package parser

import (
	"fmt"

	"github.com/talktakestime/brang/internal/token"
)

// Error is returned for any syntax error encountered while parsing.
type Error struct {
	Msg string
	Pos int
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at byte %d: %s", e.Pos, e.Msg)
}

// Parser holds the token cursor over a fixed token slice.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New constructs a Parser over tokens, which must end in an EOF token (as
// produced by lexer.Lex).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a full program into a Root node.
func Parse(tokens []token.Token) (*token.Node, error) {
	p := New(tokens)
	return p.parseRoot()
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) next() token.Token {
	t := p.tokens[p.pos]
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) expect(kind token.Kind, what string) (token.Token, error) {
	t := p.next()
	if t.Kind != kind {
		return t, &Error{Msg: fmt.Sprintf("expected %s, found %s", what, t), Pos: t.Pos}
	}
	return t, nil
}

func (p *Parser) parseRoot() (*token.Node, error) {
	var stmts []*token.Node
	for p.peek().Kind != token.EOF && p.peek().Kind != token.RBrace {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return token.NewNode(token.Token{Kind: token.Root}, stmts...), nil
}

func (p *Parser) parseStatement() (*token.Node, error) {
	switch p.peek().Kind {
	case token.VarSig:
		p.next()
		return p.parseAssignLike(true)
	case token.Ident:
		return p.parseAssignLike(false)
	case token.If:
		return p.parseBranch()
	case token.Print:
		return p.parsePrint()
	case token.While:
		return p.parseLoopLike(token.While, "while")
	case token.For:
		return p.parseLoopLike(token.For, "for")
	case token.FuncSig:
		return p.parseFunc()
	default:
		t := p.next()
		return nil, &Error{Msg: fmt.Sprintf("unexpected token %s at start of statement", t), Pos: t.Pos}
	}
}

// parseAssignLike parses both `var X = <expr>;` and `X = <expr>;`, plus the
// `X = getchar();` / `X = input();` special-case assignment form.
// Declared and plain reassignment build the same node shape; the compiler
// binds the name idempotently either way.
func (p *Parser) parseAssignLike(declared bool) (*token.Node, error) {
	ident, err := p.expect(token.Ident, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign, "'='"); err != nil {
		return nil, err
	}

	if p.peek().Kind == token.GetChar || p.peek().Kind == token.Input {
		p.next()
		if _, err := p.expect(token.Semicolon, "';'"); err != nil {
			return nil, err
		}
		return token.NewNode(token.Token{Kind: token.GetChar}, token.Leaf(ident)), nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "';'"); err != nil {
		return nil, err
	}
	_ = declared
	return token.NewNode(token.Token{Kind: token.Assign}, token.Leaf(ident), expr), nil
}

func (p *Parser) parseBlock() (*token.Node, error) {
	if _, err := p.expect(token.LBrace, "'{'"); err != nil {
		return nil, err
	}
	root, err := p.parseRoot()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBrace, "'}'"); err != nil {
		return nil, err
	}
	return root, nil
}

func (p *Parser) parseBranch() (*token.Node, error) {
	p.next() // 'if'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	ifBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	elseBody := token.NewNode(token.Token{Kind: token.Root})
	if p.peek().Kind == token.Else {
		p.next()
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return token.NewBranch(cond, ifBody, elseBody), nil
}

func (p *Parser) parsePrint() (*token.Node, error) {
	p.next() // 'print'
	var child *token.Node
	if p.peek().Kind == token.StrLit {
		child = token.Leaf(p.next())
	} else {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		child = expr
	}
	if _, err := p.expect(token.Semicolon, "';'"); err != nil {
		return nil, err
	}
	return token.NewNode(token.Token{Kind: token.Print}, child), nil
}

// parseLoopLike recognizes `while <expr> { ... }` and `for (...) { ... }`
// syntax only far enough to build a tree node; the compiler rejects both
// explicitly rather than lowering them.
func (p *Parser) parseLoopLike(kind token.Kind, _ string) (*token.Node, error) {
	p.next()
	if kind == token.For && p.peek().Kind == token.LParen {
		p.next()
		for p.peek().Kind != token.RParen && p.peek().Kind != token.EOF {
			p.next()
		}
		if _, err := p.expect(token.RParen, "')'"); err != nil {
			return nil, err
		}
	} else {
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return token.NewNode(token.Token{Kind: kind}, cond, body), nil
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return token.NewNode(token.Token{Kind: kind}, body), nil
}

func (p *Parser) parseFunc() (*token.Node, error) {
	p.next() // 'fun'
	ident, err := p.expect(token.Ident, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen, "'('"); err != nil {
		return nil, err
	}
	for p.peek().Kind != token.RParen && p.peek().Kind != token.EOF {
		p.next()
	}
	if _, err := p.expect(token.RParen, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return token.NewNode(token.Token{Kind: token.FuncSig}, token.Leaf(ident), body), nil
}

// parseExpr parses an expression via shunting-yard and returns it as an
// Expr node whose Children are the operand/operator stream in postfix
// order.
func (p *Parser) parseExpr() (*token.Node, error) {
	var output []*token.Node
	var ops []token.Token

	popOp := func() {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		output = append(output, token.Leaf(op))
	}

	for isExprToken(p.peek().Kind) {
		t := p.next()
		switch t.Kind {
		case token.NumLit, token.Ident:
			output = append(output, token.Leaf(t))
		case token.BinOp:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if shouldPop(t.Op, top.Op) {
					popOp()
				} else {
					break
				}
			}
			ops = append(ops, t)
		default:
			return nil, &Error{Msg: fmt.Sprintf("unexpected token %s in expression", t), Pos: t.Pos}
		}
	}

	for len(ops) > 0 {
		popOp()
	}

	if len(output) == 0 {
		t := p.peek()
		return nil, &Error{Msg: "expected expression", Pos: t.Pos}
	}

	return token.NewNode(token.Token{Kind: token.Expr}, output...), nil
}

func isExprToken(k token.Kind) bool {
	return k == token.NumLit || k == token.Ident || k == token.BinOp
}

// precedence ranks exponentiation above */, above +-, above comparisons.
func precedence(op token.BiOp) int {
	switch op {
	case token.OpPow:
		return 4
	case token.OpMul, token.OpDiv:
		return 3
	case token.OpAdd, token.OpSub:
		return 2
	default: // comparisons
		return 1
	}
}

func leftAssoc(op token.BiOp) bool {
	switch op {
	case token.OpMul, token.OpAdd:
		return true
	case token.OpPow, token.OpDiv, token.OpSub:
		return false
	default: // comparisons are left-associative
		return true
	}
}

func shouldPop(incoming, top token.BiOp) bool {
	if leftAssoc(incoming) {
		return precedence(incoming) <= precedence(top)
	}
	return precedence(incoming) < precedence(top)
}
