package compiler_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talktakestime/brang/internal/compiler"
	"github.com/talktakestime/brang/internal/vm"
)

func runTape(t *testing.T, tape *compiler.Tape) *vm.VM {
	t.Helper()
	var out bytes.Buffer
	machine := vm.New(strings.NewReader(""), &out)
	require.NoError(t, machine.Run(tape.Output()))
	return machine
}

// newTapeWithCells returns a fresh Tape whose cells [0, n) are already
// allocated, so the scratch cells an idiom allocates never overlap the
// operand cells a test writes directly.
func newTapeWithCells(t *testing.T, n int) *compiler.Tape {
	t.Helper()
	tape := compiler.NewTape()
	_, err := tape.Alloc(n)
	require.NoError(t, err)
	return tape
}

func TestSetWritesConstant(t *testing.T) {
	tape := compiler.NewTape()
	tape.Set(3, 42)
	machine := runTape(t, tape)
	assert.Equal(t, byte(42), machine.Cell(3))
}

func TestAddConstAndSubConst(t *testing.T) {
	tape := compiler.NewTape()
	tape.Set(0, 10)
	tape.AddConst(0, 5)
	tape.SubConst(0, 3)
	machine := runTape(t, tape)
	assert.Equal(t, byte(12), machine.Cell(0))
}

func TestMoveZeroesSource(t *testing.T) {
	tape := compiler.NewTape()
	tape.Set(0, 7)
	tape.Move(0, 1)
	machine := runTape(t, tape)
	assert.Equal(t, byte(0), machine.Cell(0))
	assert.Equal(t, byte(7), machine.Cell(1))
}

func TestCopyPreservesSource(t *testing.T) {
	tape := newTapeWithCells(t, 2)
	tape.Set(0, 9)
	require.NoError(t, tape.Copy(0, 1))
	machine := runTape(t, tape)
	assert.Equal(t, byte(9), machine.Cell(0))
	assert.Equal(t, byte(9), machine.Cell(1))
}

func TestConsumingAddZeroesLHS(t *testing.T) {
	tape := compiler.NewTape()
	tape.Set(0, 4)
	tape.Set(1, 5)
	tape.ConsumingAdd(0, 1)
	machine := runTape(t, tape)
	assert.Equal(t, byte(0), machine.Cell(0))
	assert.Equal(t, byte(9), machine.Cell(1))
}

func TestAddPreservesLHS(t *testing.T) {
	tape := newTapeWithCells(t, 2)
	tape.Set(0, 4)
	tape.Set(1, 5)
	require.NoError(t, tape.Add(0, 1))
	machine := runTape(t, tape)
	assert.Equal(t, byte(4), machine.Cell(0))
	assert.Equal(t, byte(9), machine.Cell(1))
}

func TestSubPreservesLHS(t *testing.T) {
	tape := newTapeWithCells(t, 2)
	tape.Set(0, 3)
	tape.Set(1, 10)
	require.NoError(t, tape.Sub(0, 1))
	machine := runTape(t, tape)
	assert.Equal(t, byte(3), machine.Cell(0))
	assert.Equal(t, byte(7), machine.Cell(1))
}

func TestMulPreservesLHS(t *testing.T) {
	tape := newTapeWithCells(t, 2)
	tape.Set(0, 4)
	tape.Set(1, 5)
	require.NoError(t, tape.Mul(0, 1))
	machine := runTape(t, tape)
	assert.Equal(t, byte(4), machine.Cell(0))
	assert.Equal(t, byte(20), machine.Cell(1))
}

func TestNotTogglesZeroness(t *testing.T) {
	tape := newTapeWithCells(t, 2)
	tape.Set(0, 0)
	tape.Set(1, 5)
	require.NoError(t, tape.Not(0))
	require.NoError(t, tape.Not(1))
	machine := runTape(t, tape)
	assert.Equal(t, byte(1), machine.Cell(0))
	assert.Equal(t, byte(0), machine.Cell(1))
}

func TestEqWritesBooleanIntoRHS(t *testing.T) {
	cases := []struct {
		lhs, rhs uint8
		want     byte
	}{
		{5, 5, 1},
		{5, 6, 0},
	}
	for _, c := range cases {
		tape := newTapeWithCells(t, 2)
		tape.Set(0, c.lhs)
		tape.Set(1, c.rhs)
		require.NoError(t, tape.Eq(0, 1))
		machine := runTape(t, tape)
		assert.Equal(t, c.want, machine.Cell(1))
	}
}

func TestNeqWritesBooleanIntoRHS(t *testing.T) {
	tape := newTapeWithCells(t, 2)
	tape.Set(0, 5)
	tape.Set(1, 6)
	require.NoError(t, tape.Neq(0, 1))
	machine := runTape(t, tape)
	assert.Equal(t, byte(1), machine.Cell(1))
}

func TestGeqWritesBooleanIntoRHSAndPreservesLHS(t *testing.T) {
	cases := []struct {
		lhs, rhs uint8
		want     byte
	}{
		{5, 3, 1},
		{3, 5, 0},
		{4, 4, 1},
		{0, 0, 1},
		{0, 1, 0},
	}
	for _, c := range cases {
		tape := newTapeWithCells(t, 2)
		tape.Set(0, c.lhs)
		tape.Set(1, c.rhs)
		require.NoError(t, tape.Geq(0, 1))
		machine := runTape(t, tape)
		assert.Equalf(t, c.want, machine.Cell(1), "Geq(%d, %d)", c.lhs, c.rhs)
		assert.Equalf(t, byte(c.lhs), machine.Cell(0), "Geq(%d, %d) must preserve lhs", c.lhs, c.rhs)
	}
}

func TestLeqWritesBooleanIntoRHS(t *testing.T) {
	cases := []struct {
		lhs, rhs uint8
		want     byte
	}{
		{3, 5, 1},
		{5, 3, 0},
		{4, 4, 1},
	}
	for _, c := range cases {
		tape := newTapeWithCells(t, 2)
		tape.Set(0, c.lhs)
		tape.Set(1, c.rhs)
		require.NoError(t, tape.Leq(0, 1))
		machine := runTape(t, tape)
		assert.Equalf(t, c.want, machine.Cell(1), "Leq(%d, %d)", c.lhs, c.rhs)
	}
}

func TestGtAndLtWriteBooleanIntoRHS(t *testing.T) {
	tape := newTapeWithCells(t, 2)
	tape.Set(0, 5)
	tape.Set(1, 3)
	require.NoError(t, tape.Gt(0, 1))
	machine := runTape(t, tape)
	assert.Equal(t, byte(1), machine.Cell(1))

	tape2 := newTapeWithCells(t, 2)
	tape2.Set(0, 3)
	tape2.Set(1, 5)
	require.NoError(t, tape2.Lt(0, 1))
	machine2 := runTape(t, tape2)
	assert.Equal(t, byte(1), machine2.Cell(1))
}
