package compiler

import "fmt"

// Environment maps source variable names to the size-1 cell each owns for
// its lifetime.
type Environment struct {
	tape  *Tape
	cells map[string]int
}

// NewEnvironment constructs an empty Environment bound to tape.
func NewEnvironment(tape *Tape) *Environment {
	return &Environment{tape: tape, cells: make(map[string]int)}
}

// Bind returns the cell previously bound to name if any; otherwise it
// allocates a fresh zeroed cell, records the binding, and returns it.
func (e *Environment) Bind(name string) (int, error) {
	if cell, ok := e.cells[name]; ok {
		return cell, nil
	}
	cell, err := e.tape.AllocZeroed(1)
	if err != nil {
		return 0, err
	}
	e.cells[name] = cell
	return cell, nil
}

// Lookup returns the cell bound to name, or ErrUndefinedIdentifier if
// name has never been bound.
func (e *Environment) Lookup(name string) (int, error) {
	cell, ok := e.cells[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUndefinedIdentifier, name)
	}
	return cell, nil
}

// Release removes name's binding and frees its cell.
func (e *Environment) Release(name string) error {
	cell, ok := e.cells[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUndefinedIdentifier, name)
	}
	delete(e.cells, name)
	return e.tape.Free(cell)
}
