package r1cs

import (
	"testing"

	"github.com/Ethsnarks/ethsnarks-il/field"
	"github.com/stretchr/testify/assert"
)

func TestMulConstraintSatisfied(t *testing.T) {
	cs := New()
	a := cs.AllocateVariable()
	b := cs.AllocateVariable()
	out := cs.AllocateVariable()

	cs.SetValue(a, field.FromUint64(3))
	cs.SetValue(b, field.FromUint64(5))
	cs.SetValue(out, field.FromUint64(15))

	cs.AddConstraint(FromVar(a), FromVar(b), FromVar(out), "mul")

	assert.True(t, cs.IsSatisfied())
}

func TestMulConstraintUnsatisfied(t *testing.T) {
	cs := New()
	a := cs.AllocateVariable()
	b := cs.AllocateVariable()
	out := cs.AllocateVariable()

	cs.SetValue(a, field.FromUint64(3))
	cs.SetValue(b, field.FromUint64(5))
	cs.SetValue(out, field.FromUint64(16))

	cs.AddConstraint(FromVar(a), FromVar(b), FromVar(out), "mul")

	assert.False(t, cs.IsSatisfied())

	idx, bad := cs.FirstUnsatisfied()
	assert.Equal(t, 0, idx)
	assert.Equal(t, "mul", bad.Handle)
}

func TestLinearCombinationConstAndScale(t *testing.T) {
	cs := New()
	x := cs.AllocateVariable()
	cs.SetValue(x, field.FromUint64(7))

	l := FromVar(x).PlusConst(field.FromUint64(10)).Scale(field.FromUint64(2))
	// (x + 10) * 2 = 2x + 20
	assert.True(t, l.Evaluate(cs).Equal(field.FromUint64(34)))
}

func TestPublicInputCount(t *testing.T) {
	cs := New()
	cs.SetNumPublicInputs(3)
	assert.Equal(t, 3, cs.NumPublicInputs())
}
