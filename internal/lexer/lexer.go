// Package lexer tokenizes brang source text into a flat token stream.
//
// The tokenizer is a regex-driven longest-match-at-anchor scanner covering
// the full keyword and operator set the language supports.
package lexer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/talktakestime/brang/internal/token"
)

type pattern struct {
	kind token.Kind
	re   *regexp.Regexp
}

// order matters: longer/more specific patterns (keywords, two-char
// operators) must precede the identifier and single-char operator
// patterns that would otherwise shadow them.
var patterns = []pattern{
	{token.VarSig, regexp.MustCompile(`^var\b`)},
	{token.FuncSig, regexp.MustCompile(`^fun\b`)},
	{token.If, regexp.MustCompile(`^if\b`)},
	{token.Else, regexp.MustCompile(`^else\b`)},
	{token.While, regexp.MustCompile(`^while\b`)},
	{token.For, regexp.MustCompile(`^for\b`)},
	{token.Print, regexp.MustCompile(`^print\b`)},
	{token.Input, regexp.MustCompile(`^input\s*\(\s*\)`)},
	{token.GetChar, regexp.MustCompile(`^getchar\s*\(\s*\)`)},
	{token.NumLit, regexp.MustCompile(`^[0-9]+`)},
	{token.StrLit, regexp.MustCompile(`^("(\\.|[^"\\])*"|'(\\.|[^'\\])*')`)},
	{token.Ident, regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*`)},
	{token.BinOp, regexp.MustCompile(`^(==|!=|<=|>=)`)},
	{token.Not, regexp.MustCompile(`^!`)},
	{token.BinOp, regexp.MustCompile(`^[+\-*/^<>]`)},
	{token.Assign, regexp.MustCompile(`^=`)},
	{token.LBrace, regexp.MustCompile(`^\{`)},
	{token.RBrace, regexp.MustCompile(`^\}`)},
	{token.LParen, regexp.MustCompile(`^\(`)},
	{token.RParen, regexp.MustCompile(`^\)`)},
	{token.Semicolon, regexp.MustCompile(`^;`)},
	{token.Comment, regexp.MustCompile(`^#[^\n]*`)},
	{token.Whitespace, regexp.MustCompile(`^\s+`)},
}

// Lex tokenizes program, returning the token stream with whitespace and
// comments discarded and a trailing EOF token appended. Unrecognized
// characters are emitted as Err tokens so that Lex itself never fails;
// the parser decides whether an Err token is fatal.
func Lex(program string) []token.Token {
	var tokens []token.Token
	pos := 0

	for pos < len(program) {
		buf := program[pos:]

		matched := false
		for _, p := range patterns {
			loc := p.re.FindStringIndex(buf)
			if loc == nil || loc[0] != 0 {
				continue
			}
			lexeme := buf[:loc[1]]
			tok := makeToken(p.kind, lexeme, pos)
			pos += loc[1]
			matched = true

			if tok.Kind == token.Whitespace || tok.Kind == token.Comment {
				break
			}
			tokens = append(tokens, tok)
			break
		}

		if !matched {
			r := []rune(buf)[0]
			tokens = append(tokens, token.Token{Kind: token.Err, Str: string(r), Pos: pos})
			pos += len(string(r))
		}
	}

	tokens = append(tokens, token.Token{Kind: token.EOF, Pos: pos})
	return tokens
}

func makeToken(kind token.Kind, lexeme string, pos int) token.Token {
	switch kind {
	case token.NumLit:
		n, err := strconv.ParseUint(lexeme, 10, 8)
		if err != nil {
			return token.Token{Kind: token.Err, Str: fmt.Sprintf("numeric literal %q out of u8 range", lexeme), Pos: pos}
		}
		return token.Token{Kind: token.NumLit, Num: uint8(n), Pos: pos}
	case token.StrLit:
		return token.Token{Kind: token.StrLit, Str: unquote(lexeme), Pos: pos}
	case token.Ident:
		return token.Token{Kind: token.Ident, Str: lexeme, Pos: pos}
	case token.BinOp:
		return token.Token{Kind: token.BinOp, Op: token.BiOpFromLexeme(lexeme), Pos: pos}
	default:
		return token.Token{Kind: kind, Pos: pos}
	}
}

// unquote strips the surrounding quotes from a string literal and resolves
// the \" and \' escapes.
func unquote(lexeme string) string {
	inner := lexeme[1 : len(lexeme)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) && (inner[i+1] == '"' || inner[i+1] == '\'') {
			b.WriteByte(inner[i+1])
			i++
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}
