package compiler

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/talktakestime/brang/internal/token"
)

// Compiler holds all compile-time state for a single compilation session:
// the tape model (allocator + pointer tracker + emitted program) and the
// variable environment. It is strictly single-threaded and synchronous, so
// a Compiler must never be shared across goroutines.
type Compiler struct {
	tape *Tape
	env  *Environment
	log  *logrus.Logger
}

// New constructs a Compiler with a fresh tape and environment. A nil
// logger falls back to a logrus.Logger with default settings.
func New(log *logrus.Logger) *Compiler {
	if log == nil {
		log = logrus.New()
	}
	tape := NewTape()
	return &Compiler{
		tape: tape,
		env:  NewEnvironment(tape),
		log:  log,
	}
}

// Output returns the emitted tape program so far.
func (c *Compiler) Output() string { return c.tape.Output() }

// Compile lowers a parsed Root node into a tape program and returns the
// raw (unwrapped) instruction stream. Column-wrapping and file writing are
// the responsibility of internal/emit.
func Compile(root *token.Node, log *logrus.Logger) (string, error) {
	c := New(log)
	if root.Token.Kind != token.Root {
		return "", fmt.Errorf("%w: top-level node has kind %s, not Root", ErrUnimplemented, root.Token.Kind)
	}
	if err := c.CompileRoot(root); err != nil {
		return "", err
	}
	return c.Output(), nil
}

// CompileRoot lowers a Root node's children in source order. A statement
// whose only failure is ErrMalformedExpression is non-fatal per spec: it is
// accumulated (the first one is returned once every statement has been
// lowered) rather than aborting the statements that follow it, so a single
// call can surface every malformed expression in the program.
func (c *Compiler) CompileRoot(node *token.Node) error {
	var reported error
	for _, n := range node.Children {
		if err := c.compileStatement(n); err != nil {
			if !errors.Is(err, ErrMalformedExpression) {
				return err
			}
			if reported == nil {
				reported = err
			}
		}
	}
	return reported
}

func (c *Compiler) compileStatement(n *token.Node) error {
	switch n.Token.Kind {
	case token.Assign:
		return c.compileAssign(n)
	case token.Branch:
		return c.compileBranch(n)
	case token.Print:
		return c.compilePrint(n)
	case token.GetChar:
		return c.compileGetChar(n)
	case token.While, token.For, token.FuncSig:
		return fmt.Errorf("%w: %s statements are recognized by the parser but not lowered", ErrUnimplemented, n.Token.Kind)
	default:
		return fmt.Errorf("%w: statement of kind %s", ErrUnimplemented, n.Token.Kind)
	}
}

// compileAssign lowers Assign(Ident, Expr): bind(name) -> d, evaluate the
// expression into a freshly zeroed scratch cell (bind may return a
// pre-existing cell on reassignment, so the scratch avoids aliasing it
// with the expression's own temporaries), then move scratch into d.
func (c *Compiler) compileAssign(n *token.Node) error {
	name := n.Children[0].Token.Str
	dest, err := c.env.Bind(name)
	if err != nil {
		return err
	}

	scratch, err := c.tape.AllocZeroed(1)
	if err != nil {
		return err
	}
	evalErr := c.EvalExpr(n.Children[1], scratch)
	if evalErr != nil && !errors.Is(evalErr, ErrMalformedExpression) {
		return evalErr
	}

	c.tape.Move(scratch, dest)
	if err := c.tape.Free(scratch); err != nil {
		return err
	}
	return evalErr
}

// compileGetChar lowers GetChar(Ident): bind(name) -> d, then read one
// byte from the runtime into d.
func (c *Compiler) compileGetChar(n *token.Node) error {
	name := n.Children[0].Token.Str
	dest, err := c.env.Bind(name)
	if err != nil {
		return err
	}
	c.tape.Goto(dest)
	c.tape.emit(',')
	return nil
}

// compileBranch lowers Branch(Expr, IfBody, ElseBody) into the canonical
// if/else tape pattern: a 2-cell [if_flag, else_flag] block, the condition
// evaluated into if_flag, and two guarded loops that each run their body
// at most once.
func (c *Compiler) compileBranch(n *token.Node) error {
	cond, ifBody, elseBody := n.Children[0], n.IfBody, n.ElseBody
	var reported error
	report := func(err error) error {
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrMalformedExpression) {
			return err
		}
		if reported == nil {
			reported = err
		}
		return nil
	}

	ifFlag, err := c.tape.AllocZeroed(2)
	if err != nil {
		return err
	}
	elseFlag := ifFlag + 1
	c.tape.Set(elseFlag, 1)

	if err := report(c.EvalExpr(cond, ifFlag)); err != nil {
		return err
	}

	c.tape.Goto(ifFlag)
	c.tape.emitStr("[[-]")
	c.tape.Goto(elseFlag)
	c.tape.emit('-')
	c.tape.Goto(ifFlag)
	if err := report(c.CompileRoot(ifBody)); err != nil {
		return err
	}
	c.tape.Goto(ifFlag)
	c.tape.emit(']')

	c.tape.Goto(elseFlag)
	c.tape.emitStr("[-")
	if err := report(c.CompileRoot(elseBody)); err != nil {
		return err
	}
	c.tape.Goto(elseFlag)
	c.tape.emit(']')

	if err := c.tape.Free(ifFlag); err != nil {
		return err
	}
	return reported
}

// compilePrint lowers Print(child) by dispatching on the child's kind.
func (c *Compiler) compilePrint(n *token.Node) error {
	child := n.Children[0]
	switch child.Token.Kind {
	case token.StrLit:
		return c.printString(child.Token.Str)
	case token.Expr:
		result, err := c.tape.AllocZeroed(1)
		if err != nil {
			return err
		}
		evalErr := c.EvalExpr(child, result)
		if evalErr != nil && !errors.Is(evalErr, ErrMalformedExpression) {
			return evalErr
		}
		c.tape.Goto(result)
		c.tape.emit('.')
		if err := c.tape.Free(result); err != nil {
			return err
		}
		return evalErr
	case token.Ident:
		return fmt.Errorf("%w: print of a bare identifier", ErrUnimplemented)
	default:
		return fmt.Errorf("%w: print of %s", ErrUnimplemented, child.Token.Kind)
	}
}

// printString emits s byte by byte, reusing a single cell by only ever
// adjusting it by the delta between consecutive bytes. Operates over s's
// raw UTF-8 bytes, so multi-byte text round-trips correctly through the
// byte-oriented tape rather than being truncated to one byte per rune.
func (c *Compiler) printString(s string) error {
	temp, err := c.tape.AllocZeroed(1)
	if err != nil {
		return err
	}

	var prev byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= prev {
			c.tape.AddConst(temp, ch-prev)
		} else {
			c.tape.SubConst(temp, prev-ch)
		}
		c.tape.Goto(temp)
		c.tape.emit('.')
		prev = ch
	}

	return c.tape.Free(temp)
}
