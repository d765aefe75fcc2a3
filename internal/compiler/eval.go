package compiler

import (
	"fmt"

	"github.com/talktakestime/brang/internal/token"
)

// EvalExpr evaluates an Expr node's postfix (RPN) children using a scratch
// stack of cells, and writes the scalar result into result, which the
// caller must guarantee is zero on entry.
func (c *Compiler) EvalExpr(node *token.Node, result int) error {
	if node.Token.Kind != token.Expr {
		return fmt.Errorf("%w: expression node has kind %s, not Expr", ErrUnimplemented, node.Token.Kind)
	}

	stackSize := (len(node.Children)+1)/2 + 1
	stack, err := c.tape.Alloc(stackSize)
	if err != nil {
		return err
	}

	i := 0
	var reported error

	for _, n := range node.Children {
		switch n.Token.Kind {
		case token.NumLit:
			c.tape.Set(stack+i, n.Token.Num)
			i++
		case token.Ident:
			adr, err := c.env.Lookup(n.Token.Str)
			if err != nil {
				return err
			}
			if err := c.tape.Copy(adr, stack+i); err != nil {
				return err
			}
			i++
		case token.BinOp:
			if i < 2 {
				err := fmt.Errorf("%w: operator %s has too few operands", ErrMalformedExpression, n.Token.Op)
				c.log.Warn(err)
				if reported == nil {
					reported = err
				}
				continue
			}
			a := stack + i - 2
			b := stack + i - 1
			if err := c.applyBinOp(n.Token.Op, b, a); err != nil {
				return err
			}
			i--
		case token.StrLit:
			return fmt.Errorf("%w: string literals inside expressions", ErrUnimplemented)
		default:
			return fmt.Errorf("%w: unexpected token %s in expression", ErrUnimplemented, n.Token)
		}
	}

	if i != 1 {
		err := fmt.Errorf("%w: expression left %d value(s) on the stack", ErrMalformedExpression, i)
		c.log.Warn(err)
		if reported == nil {
			reported = err
		}
	}

	c.tape.Move(stack, result)
	if err := c.tape.Free(stack); err != nil {
		return err
	}

	return reported
}

// applyBinOp dispatches a binary operator to its tape idiom. The operand
// mapping includes a deliberate lhs/rhs swap for the comparison operators,
// since the tape idioms for >=/<=/</> write their result into their
// second argument while the source-level operator reads left-to-right.
func (c *Compiler) applyBinOp(op token.BiOp, b, a int) error {
	switch op {
	case token.OpAdd:
		c.tape.ConsumingAdd(b, a)
		return nil
	case token.OpSub:
		c.tape.ConsumingSub(b, a)
		return nil
	case token.OpMul:
		return c.tape.ConsumingMul(b, a)
	case token.OpEqual:
		return c.tape.Eq(b, a)
	case token.OpNotEqual:
		return c.tape.Neq(b, a)
	case token.OpLessOrEqual:
		return c.tape.Geq(b, a)
	case token.OpGreaterOrEqual:
		return c.tape.Leq(b, a)
	case token.OpLess:
		return c.tape.Gt(b, a)
	case token.OpGreater:
		return c.tape.Lt(b, a)
	case token.OpDiv, token.OpPow:
		return fmt.Errorf("%w: operator %s", ErrUnimplemented, op)
	default:
		return fmt.Errorf("%w: invalid operator reached the compiler", ErrUnimplemented)
	}
}
