package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talktakestime/brang/internal/lexer"
	"github.com/talktakestime/brang/internal/parser"
	"github.com/talktakestime/brang/internal/token"
)

func parse(t *testing.T, src string) *token.Node {
	t.Helper()
	root, err := parser.Parse(lexer.Lex(src))
	require.NoError(t, err)
	return root
}

func TestParseAssignProducesPostfixExpr(t *testing.T) {
	root := parse(t, "var a = 1 + 2 * 3;")
	require.Len(t, root.Children, 1)

	assign := root.Children[0]
	require.Equal(t, token.Assign, assign.Token.Kind)
	require.Equal(t, "a", assign.Children[0].Token.Str)

	expr := assign.Children[1]
	require.Equal(t, token.Expr, expr.Token.Kind)

	// 1 2 3 * + : multiplication binds tighter than addition.
	require.Len(t, expr.Children, 5)
	assert.Equal(t, token.NumLit, expr.Children[0].Token.Kind)
	assert.Equal(t, token.NumLit, expr.Children[1].Token.Kind)
	assert.Equal(t, token.NumLit, expr.Children[2].Token.Kind)
	assert.Equal(t, token.OpMul, expr.Children[3].Token.Op)
	assert.Equal(t, token.OpAdd, expr.Children[4].Token.Op)
}

func TestParseBranchPopulatesNamedFields(t *testing.T) {
	root := parse(t, "if a < b { print 1; } else { print 2; }")
	require.Len(t, root.Children, 1)

	branch := root.Children[0]
	require.Equal(t, token.Branch, branch.Token.Kind)
	require.NotNil(t, branch.IfBody)
	require.NotNil(t, branch.ElseBody)
	assert.Len(t, branch.IfBody.Children, 1)
	assert.Len(t, branch.ElseBody.Children, 1)
}

func TestParseBranchWithoutElseGetsEmptyBody(t *testing.T) {
	root := parse(t, "if a { print 1; }")
	branch := root.Children[0]
	require.NotNil(t, branch.ElseBody)
	assert.Empty(t, branch.ElseBody.Children)
}

func TestParseGetCharAssignment(t *testing.T) {
	root := parse(t, "x = getchar();")
	stmt := root.Children[0]
	require.Equal(t, token.GetChar, stmt.Token.Kind)
	assert.Equal(t, "x", stmt.Children[0].Token.Str)
}

func TestParsePrintStringLiteral(t *testing.T) {
	root := parse(t, `print "Hi!";`)
	stmt := root.Children[0]
	require.Equal(t, token.Print, stmt.Token.Kind)
	assert.Equal(t, token.StrLit, stmt.Children[0].Token.Kind)
	assert.Equal(t, "Hi!", stmt.Children[0].Token.Str)
}

func TestParseWhileIsRecognizedButNotLowered(t *testing.T) {
	root := parse(t, "while a { print 1; }")
	require.Equal(t, token.While, root.Children[0].Token.Kind)
}

// A dangling operator with too few operands is not a syntax error: the
// parser happily builds the postfix Expr node, and it is the compiler's
// expression evaluator that reports ErrMalformedExpression at evaluation
// time instead.
func TestParseDanglingOperatorIsNotASyntaxError(t *testing.T) {
	root := parse(t, "var a = 1 +;")
	expr := root.Children[0].Children[1]
	assert.Len(t, expr.Children, 2)
}
