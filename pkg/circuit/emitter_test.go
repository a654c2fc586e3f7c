package circuit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ethsnarks/ethsnarks-il/field"
	"github.com/Ethsnarks/ethsnarks-il/pkg/r1cs"
)

// TestEmitUnsatisfiedOnTamperedWitness checks that a witness inconsistent
// with the circuit's algebraic definition is caught by IsSatisfied, i.e.
// that emission actually encodes the opcode semantics rather than trivially
// accepting any assignment.
func TestEmitUnsatisfiedOnTamperedWitness(t *testing.T) {
	src := "total 3\ninput 0\ninput 1\noutput 2\nmul in 2 0 1 out 1 2\n"

	cs := r1cs.New()
	table := NewWireTable(cs)
	c, err := ParseCircuit(strings.NewReader(src), table, cs)
	assert.NoError(t, err)
	assert.NoError(t, LoadInputs(strings.NewReader("0 3\n1 5\n"), table))
	assert.NoError(t, Evaluate(c, table))

	// Tamper with the output wire after evaluation, before emission.
	table.WriteValue(2, field.FromUint64(999))

	assert.NoError(t, EmitConstraints(c, table, cs))
	assert.False(t, cs.IsSatisfied())

	idx, cons := cs.FirstUnsatisfied()
	assert.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "mul", cons.Handle)
}

func TestEmitSplitBooleanConstraints(t *testing.T) {
	src := "total 5\ninput 0\noutput 4\nsplit in 1 0 out 3 1 2 3\n" +
		"add in 3 1 2 3 out 1 4\n"

	cs := r1cs.New()
	table := NewWireTable(cs)
	c, err := ParseCircuit(strings.NewReader(src), table, cs)
	assert.NoError(t, err)
	assert.NoError(t, LoadInputs(strings.NewReader("0 3\n"), table))
	assert.NoError(t, Evaluate(c, table))
	assert.NoError(t, EmitConstraints(c, table, cs))

	assert.True(t, cs.IsSatisfied())

	// A split of 3 (0b011) must produce exactly one boolean constraint per
	// bit plus one reconstruction constraint.
	splitConstraints := 0

	for _, cons := range cs.Constraints() {
		if strings.HasPrefix(cons.Handle, "split:") {
			splitConstraints++
		}
	}

	assert.Equal(t, 4, splitConstraints, "3 boolean constraints + 1 reconstruction constraint")
}

func TestEmitLUT4Scenario(t *testing.T) {
	src := "total 3\ninput 0\ninput 1\noutput 2\n" +
		"table 4 10 20 30 40 in 0 1 out 2\n"

	tests := []struct {
		b0, b1 string
		want   uint64
	}{
		{"0", "0", 10},
		{"1", "0", 20},
		{"0", "1", 30},
		{"1", "1", 40},
	}

	for _, tt := range tests {
		cs := r1cs.New()
		table := NewWireTable(cs)
		c, err := ParseCircuit(strings.NewReader(src), table, cs)
		assert.NoError(t, err)
		assert.NoError(t, LoadInputs(strings.NewReader("0 "+tt.b0+"\n1 "+tt.b1+"\n"), table))
		assert.NoError(t, Evaluate(c, table))

		assert.Equal(t, field.FromUint64(tt.want).String(), table.ReadValue(2).String())

		assert.NoError(t, EmitConstraints(c, table, cs))
		assert.True(t, cs.IsSatisfied())
	}
}
