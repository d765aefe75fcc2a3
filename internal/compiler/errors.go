package compiler

import "errors"

// Sentinel errors covering the compiler's fatal and non-fatal failure
// modes. Use errors.Is to test for a particular kind; concrete instances
// are wrapped with fmt.Errorf("%w: ...", Err...) to attach the offending
// name/token.
var (
	// ErrOutOfMemory is returned when the allocator cannot satisfy a
	// request within the 30,000-cell address space. Fatal.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrDoubleFree is returned when freeing a base that is not
	// currently live. Fatal; indicates a compiler bug.
	ErrDoubleFree = errors.New("double free")

	// ErrUndefinedIdentifier is returned when a name is referenced
	// before it is bound. Fatal.
	ErrUndefinedIdentifier = errors.New("undefined identifier")

	// ErrMalformedExpression is returned when an operator lacks enough
	// operands, or operands are left over. Reported, not fatal:
	// evaluation continues so multiple errors can surface per run.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrUnimplemented covers division, exponent, string literals
	// inside expressions, array assignment, and loop/function lowering.
	// Fatal, with the offending token named in the wrapping message.
	ErrUnimplemented = errors.New("unimplemented")
)
