// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package circuit

import (
	"fmt"

	"github.com/Ethsnarks/ethsnarks-il/field"
	"github.com/Ethsnarks/ethsnarks-il/pkg/r1cs"
)

// EmitConstraints walks c's instructions in order and emits the R1CS
// constraints that encode each opcode's semantics (spec §4.4), using the
// variables already allocated in table. Must run after Evaluate so that the
// gadget auxiliary variables introduced here (the lookup-table product and
// sub-selector witnesses) can be assigned concrete values consistent with
// the evaluated wires, exactly as the teacher's gadgets allocate an
// assignment column alongside each constraint they add
// (pkg/air/gadgets/bits.go's ApplyBitwidthGadget).
func EmitConstraints(c *Circuit, table *WireTable, cs *r1cs.ConstraintSystem) error {
	for i, inst := range c.Instructions {
		if err := emitInstruction(inst, table, cs); err != nil {
			return fmt.Errorf("instruction %d (%s): %w", i, inst.Opcode, err)
		}
	}

	return nil
}

func emitInstruction(inst Instruction, table *WireTable, cs *r1cs.ConstraintSystem) error {
	switch inst.Opcode {
	case Add:
		sum := r1cs.LC()
		for _, w := range inst.Inputs {
			sum = sum.PlusVar(table.Lookup(w))
		}

		cs.AddConstraint(r1cs.FromConst(field.One()), sum, varLC(table, inst.Outputs[0]), "add")
	case Mul:
		cs.AddConstraint(varLC(table, inst.Inputs[0]), varLC(table, inst.Inputs[1]), varLC(table, inst.Outputs[0]), "mul")
	case Assert:
		cs.AddConstraint(varLC(table, inst.Inputs[0]), varLC(table, inst.Inputs[1]), varLC(table, inst.Outputs[0]), "assert")
	case Xor:
		a, b, out := table.Lookup(inst.Inputs[0]), table.Lookup(inst.Inputs[1]), table.Lookup(inst.Outputs[0])
		cs.AddConstraint(r1cs.FromVar(a).Scale(field.FromUint64(2)), r1cs.FromVar(b),
			r1cs.FromVar(a).PlusVar(b).Sub(r1cs.FromVar(out)), "xor")
	case Or:
		a, b, out := table.Lookup(inst.Inputs[0]), table.Lookup(inst.Inputs[1]), table.Lookup(inst.Outputs[0])
		cs.AddConstraint(r1cs.FromVar(a), r1cs.FromVar(b), r1cs.FromVar(a).PlusVar(b).Sub(r1cs.FromVar(out)), "or")
	case ConstMul, ConstMulNeg:
		x, out := table.Lookup(inst.Inputs[0]), table.Lookup(inst.Outputs[0])
		cs.AddConstraint(r1cs.FromVar(x), r1cs.FromConst(inst.Constant), r1cs.FromVar(out), inst.Opcode.String())
	case Split:
		emitSplit(inst, table, cs)
	case Pack:
		emitPack(inst, table, cs)
	case Zerop:
		emitZerop(inst, table, cs)
	case Table:
		return emitTable(inst, table, cs)
	}

	return nil
}

func varLC(table *WireTable, w Wire) r1cs.LinearCombination {
	return r1cs.FromVar(table.Lookup(w))
}

// emitSplit emits, for every output bit, the boolean constraint
// b*(1-b) = 0, plus the single reconstruction constraint
// x*1 = Σ 2^i * bits[i] (spec §4.4).
func emitSplit(inst Instruction, table *WireTable, cs *r1cs.ConstraintSystem) {
	x := table.Lookup(inst.Inputs[0])
	recon := r1cs.LC()

	pow := field.One()
	two := field.FromUint64(2)

	for i, w := range inst.Outputs {
		b := table.Lookup(w)
		cs.AddConstraint(r1cs.FromVar(b), r1cs.FromConst(field.One()).Sub(r1cs.FromVar(b)), r1cs.LC(),
			fmt.Sprintf("split:bit%d", i))
		recon = recon.Plus(b, pow)
		pow = pow.Mul(two)
	}

	cs.AddConstraint(r1cs.FromVar(x), r1cs.FromConst(field.One()), recon, "split:recon")
}

// emitPack emits out*1 = Σ 2^i*bits[i]. Boolean constraints on the inputs
// are NOT emitted here (spec §4.4): the caller is responsible for having
// proved them boolean elsewhere, typically via an upstream split.
func emitPack(inst Instruction, table *WireTable, cs *r1cs.ConstraintSystem) {
	out := table.Lookup(inst.Outputs[0])
	recon := r1cs.LC()

	pow := field.One()
	two := field.FromUint64(2)

	for _, w := range inst.Inputs {
		recon = recon.Plus(table.Lookup(w), pow)
		pow = pow.Mul(two)
	}

	cs.AddConstraint(r1cs.FromVar(out), r1cs.FromConst(field.One()), recon, "pack")
}

// emitZerop emits the two zerop constraints (spec §4.4):
//
//	x * (1 - Y) = 0   (forces Y = 1 whenever x != 0)
//	x * M       = Y   (M = 1/x witnesses Y = 1; forces Y = 0 when x = 0)
func emitZerop(inst Instruction, table *WireTable, cs *r1cs.ConstraintSystem) {
	x := table.Lookup(inst.Inputs[0])
	m := table.Lookup(inst.Outputs[0])
	y := table.Lookup(inst.Outputs[1])

	cs.AddConstraint(r1cs.FromVar(x), r1cs.FromConst(field.One()).Sub(r1cs.FromVar(y)), r1cs.LC(), "zerop:forceY")
	cs.AddConstraint(r1cs.FromVar(x), r1cs.FromVar(m), r1cs.FromVar(y), "zerop:witness")
}

// emitTable emits the 2/4/8-entry lookup-table gadgets (spec §4.4). Boolean
// constraints on the table's inputs are NOT emitted here: callers must
// prove them elsewhere (in practice via an upstream split).
func emitTable(inst Instruction, table *WireTable, cs *r1cs.ConstraintSystem) error {
	out := table.Lookup(inst.Outputs[0])

	switch len(inst.Table) {
	case 2:
		in := table.Lookup(inst.Inputs[0])
		v0, v1 := inst.Table[0], inst.Table[1]
		cs.AddConstraint(r1cs.FromConst(v1.Sub(v0)), r1cs.FromVar(in), r1cs.FromVar(out).PlusConst(v0.Neg()), "table:lut2")
	case 4:
		b0, b1 := table.Lookup(inst.Inputs[0]), table.Lookup(inst.Inputs[1])
		emitLUT4(cs, b0, b1, inst.Table, out, "table:lut4")
	case 8:
		b0 := table.Lookup(inst.Inputs[0])
		b1 := table.Lookup(inst.Inputs[1])
		b2 := table.Lookup(inst.Inputs[2])

		b0Val, b1Val := table.ReadValue(inst.Inputs[0]), table.ReadValue(inst.Inputs[1])

		lo := newAuxVariable(cs, b0Val, b1Val, inst.Table[0:4])
		hi := newAuxVariable(cs, b0Val, b1Val, inst.Table[4:8])

		emitLUT4(cs, b0, b1, inst.Table[0:4], lo, "table:lut8:lo")
		emitLUT4(cs, b0, b1, inst.Table[4:8], hi, "table:lut8:hi")

		// b2*(hi-lo) = out-lo
		cs.AddConstraint(r1cs.FromVar(b2), r1cs.FromVar(hi).Sub(r1cs.FromVar(lo)),
			r1cs.FromVar(out).Sub(r1cs.FromVar(lo)), "table:lut8:select")
	default:
		return fmt.Errorf("unsupported table size %d", len(inst.Table))
	}

	return nil
}

// newAuxVariable allocates an internal variable, pre-populated with the
// 2-bit LUT value it is about to be constrained to equal, so that
// ConstraintSystem.GetValue never observes an unset variable before
// emitLUT4's constraints are added.
func newAuxVariable(cs *r1cs.ConstraintSystem, b0Val, b1Val field.Value, values []field.Value) r1cs.Variable {
	v := cs.AllocateVariable()
	cs.SetValue(v, lut4Value(b0Val, b1Val, values))

	return v
}

func lut4Value(b0Val, b1Val field.Value, values []field.Value) field.Value {
	c0 := values[0]
	c1 := values[1].Sub(values[0])
	c2 := values[2].Sub(values[0])
	c3 := values[3].Sub(values[2]).Sub(values[1]).Add(values[0])

	return c0.Add(c1.Mul(b0Val)).Add(c2.Mul(b1Val)).Add(c3.Mul(b0Val).Mul(b1Val))
}

// emitLUT4 emits the size-4 (2-bit) lookup-table gadget (spec §4.4): an
// auxiliary variable for the product b0*b1, and the bilinear reconstruction
// constraint against out.
func emitLUT4(cs *r1cs.ConstraintSystem, b0, b1 r1cs.Variable, values []field.Value, out r1cs.Variable, handle string) {
	b0Val, b1Val := cs.GetValue(b0), cs.GetValue(b1)

	aux := cs.AllocateVariable()
	cs.SetValue(aux, b0Val.Mul(b1Val))

	cs.AddConstraint(r1cs.FromVar(b0), r1cs.FromVar(b1), r1cs.FromVar(aux), handle+":aux")

	c0 := values[0]
	c1 := values[1].Sub(values[0])
	c2 := values[2].Sub(values[0])
	c3 := values[3].Sub(values[2]).Sub(values[1]).Add(values[0])

	rhs := r1cs.FromConst(c0).Plus(b0, c1).Plus(b1, c2).Plus(aux, c3)
	cs.AddConstraint(r1cs.FromConst(field.One()), rhs, r1cs.FromVar(out), handle)
}
