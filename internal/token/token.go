// Package token defines the tagged-union token and syntax-tree types shared
// by the lexer, parser and compiler.
package token

import "fmt"

// Kind identifies the variant of a Token. Go has no sum types, so Kind plus
// the per-kind payload fields on Token stand in for the original's enum.
type Kind int

const (
	Invalid Kind = iota

	// std functions
	Print
	GetLine
	GetChar
	Input

	// signatures
	FuncSig
	VarSig

	// conditionals
	Branch
	If
	Else

	// loops
	While
	For

	// literals
	NumLit
	StrLit

	// identifiers
	Ident

	// expressions
	Expr

	// unary operators
	Not

	// binary operators / assignment
	Assign
	BinOp

	// syntax
	LBrace
	RBrace
	LParen
	RParen
	Semicolon
	Comment
	Whitespace
	EOF
	Err

	Root
)

var kindNames = map[Kind]string{
	Invalid:    "Invalid",
	Print:      "Print",
	GetLine:    "GetLine",
	GetChar:    "GetChar",
	Input:      "Input",
	FuncSig:    "FuncSig",
	VarSig:     "VarSig",
	Branch:     "Branch",
	If:         "If",
	Else:       "Else",
	While:      "While",
	For:        "For",
	NumLit:     "NumLit",
	StrLit:     "StrLit",
	Ident:      "Ident",
	Expr:       "Expr",
	Not:        "Not",
	Assign:     "Assign",
	BinOp:      "BinOp",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LParen:     "LParen",
	RParen:     "RParen",
	Semicolon:  "Semicolon",
	Comment:    "Comment",
	Whitespace: "Whitespace",
	EOF:        "EOF",
	Err:        "Err",
	Root:       "Root",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// BiOp identifies a binary operator. Invalid is a parser safeguard: it
// should never reach the compiler, and doing so indicates a compiler bug.
type BiOp int

const (
	OpInvalid BiOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpEqual
	OpNotEqual
	OpLessOrEqual
	OpGreaterOrEqual
	OpLess
	OpGreater
)

var biOpNames = map[BiOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpPow: "^",
	OpEqual: "==", OpNotEqual: "!=",
	OpLessOrEqual: "<=", OpGreaterOrEqual: ">=",
	OpLess: "<", OpGreater: ">",
	OpInvalid: "<invalid>",
}

func (op BiOp) String() string {
	if s, ok := biOpNames[op]; ok {
		return s
	}
	return "<unknown op>"
}

// BiOpFromLexeme maps a lexed operator string to its BiOp, or OpInvalid if
// unrecognized.
func BiOpFromLexeme(s string) BiOp {
	for op, lexeme := range biOpNames {
		if lexeme == s {
			return op
		}
	}
	return OpInvalid
}

// Token is a single lexical token. Only the fields relevant to Kind are
// populated; the zero value of the others is ignored.
type Token struct {
	Kind Kind
	Num  uint8
	Str  string
	Op   BiOp
	// Pos is the byte offset in source where this token begins, used for
	// diagnostics.
	Pos int
}

func (t Token) String() string {
	switch t.Kind {
	case NumLit:
		return fmt.Sprintf("NumLit(%d)", t.Num)
	case StrLit:
		return fmt.Sprintf("StrLit(%q)", t.Str)
	case Ident:
		return fmt.Sprintf("Ident(%s)", t.Str)
	case BinOp:
		return fmt.Sprintf("BinOp(%s)", t.Op)
	case Err:
		return fmt.Sprintf("Err(%q)", t.Str)
	default:
		return t.Kind.String()
	}
}

// Node is a tree node produced by the parser and consumed by the compiler.
// Branch nodes additionally expose IfBody/ElseBody as named fields, so a
// branch's sub-bodies never need to be recovered positionally.
type Node struct {
	Token    Token
	Children []*Node

	// IfBody and ElseBody are populated only for Token.Kind == Branch, and
	// otherwise nil. Children[1] and Children[2] still mirror these for
	// any code that walks the tree generically.
	IfBody   *Node
	ElseBody *Node
}

// Leaf constructs a childless node.
func Leaf(tok Token) *Node {
	return &Node{Token: tok}
}

// NewNode constructs a node with the given children.
func NewNode(tok Token, children ...*Node) *Node {
	return &Node{Token: tok, Children: children}
}

// NewBranch constructs a Branch node with named IfBody/ElseBody fields, also
// populating Children for generic tree walkers.
func NewBranch(cond, ifBody, elseBody *Node) *Node {
	return &Node{
		Token:    Token{Kind: Branch},
		Children: []*Node{cond, ifBody, elseBody},
		IfBody:   ifBody,
		ElseBody: elseBody,
	}
}
