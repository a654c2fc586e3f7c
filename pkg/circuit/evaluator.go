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
	"github.com/bits-and-blooms/bitset"
	log "github.com/sirupsen/logrus"

	"github.com/Ethsnarks/ethsnarks-il/field"
)

// Evaluate walks c's instructions in order, reading input-wire values from
// table and writing each instruction's output-wire values back into table
// (spec §4.3). Instructions must be listed in an order that respects data
// dependencies; the core does not verify this (spec §3), it simply executes
// in file order.
func Evaluate(c *Circuit, table *WireTable) error {
	for _, inst := range c.Instructions {
		if err := evalInstruction(inst, table); err != nil {
			return err
		}

		logInstructionOutputs(inst, table)
	}

	return nil
}

// logInstructionOutputs emits one Debug-level line per output wire an
// instruction assigned, for the "check -v" verbose evaluation trace
// (SPEC_FULL §10). assert's declared output is never written by assert
// itself (spec §4.3), so it is skipped here rather than read back early.
func logInstructionOutputs(inst Instruction, table *WireTable) {
	if inst.Opcode == Assert {
		return
	}

	for _, w := range inst.Outputs {
		log.WithFields(log.Fields{
			"opcode": inst.Opcode,
			"wire":   w,
			"value":  table.ReadValue(w).String(),
		}).Debug("assigned wire")
	}
}

func evalInstruction(inst Instruction, table *WireTable) error {
	switch inst.Opcode {
	case Add:
		sum := field.Zero()
		for _, w := range inst.Inputs {
			sum = sum.Add(table.ReadValue(w))
		}

		table.WriteValue(inst.Outputs[0], sum)
	case Mul:
		a, b := table.ReadValue(inst.Inputs[0]), table.ReadValue(inst.Inputs[1])
		table.WriteValue(inst.Outputs[0], a.Mul(b))
	case Xor:
		a, b := table.ReadValue(inst.Inputs[0]), table.ReadValue(inst.Inputs[1])
		table.WriteValue(inst.Outputs[0], boolField(!a.Equal(b)))
	case Or:
		a, b := table.ReadValue(inst.Inputs[0]), table.ReadValue(inst.Inputs[1])
		table.WriteValue(inst.Outputs[0], boolField(!a.IsZero() || !b.IsZero()))
	case Assert:
		// evaluator is a no-op here: c's value is assumed already present
		// (spec §4.3); the constraint stage enforces a*b = c.
	case Zerop:
		evalZerop(inst, table)
	case Split:
		evalSplit(inst, table)
	case Pack:
		evalPack(inst, table)
	case ConstMul, ConstMulNeg:
		x := table.ReadValue(inst.Inputs[0])
		table.WriteValue(inst.Outputs[0], x.Mul(inst.Constant))
	case Table:
		return evalTable(inst, table)
	}

	return nil
}

func boolField(b bool) field.Value {
	if b {
		return field.One()
	}

	return field.Zero()
}

func evalZerop(inst Instruction, table *WireTable) {
	x := table.ReadValue(inst.Inputs[0])
	// M = x⁻¹ when x != 0; when x == 0, gnark-crypto's Inverse convention
	// yields 0, which callers must not rely on (spec §4.3).
	table.WriteValue(inst.Outputs[0], x.Inverse())
	table.WriteValue(inst.Outputs[1], boolField(!x.IsZero()))
}

// evalSplit decomposes x into len(inst.Outputs) little-endian bits. The
// boolean vector is staged in a bitset.BitSet (the pack's own bit-vector
// library, via gnark-crypto's dependency graph) before being written back
// as field elements.
func evalSplit(inst Instruction, table *WireTable) {
	x := table.ReadValue(inst.Inputs[0])
	bits := bitset.New(uint(len(inst.Outputs)))

	for i := range inst.Outputs {
		if x.Bit(uint(i)) {
			bits.Set(uint(i))
		}
	}

	for i, w := range inst.Outputs {
		table.WriteValue(w, boolField(bits.Test(uint(i))))
	}
}

// evalPack is split's inverse: out = Σ_i bits_in[i] * 2^i.
func evalPack(inst Instruction, table *WireTable) {
	var (
		sum = field.Zero()
		pow = field.One()
		two = field.FromUint64(2)
	)

	for _, w := range inst.Inputs {
		sum = sum.Add(table.ReadValue(w).Mul(pow))
		pow = pow.Mul(two)
	}

	table.WriteValue(inst.Outputs[0], sum)
}

// evalTable forms idx = Σ_i inputs[i]*2^i (inputs listed least-significant
// bit first, matching the size-4/size-8 bilinear gadget encodings in spec
// §4.4) and looks up values[idx]. Every input must already be 0 or 1; any
// other value is a fatal evaluation error (spec §4.3).
func evalTable(inst Instruction, table *WireTable) error {
	idx := uint(0)

	for i, w := range inst.Inputs {
		v := table.ReadValue(w)

		switch {
		case v.IsZero():
		case v.Equal(field.One()):
			idx |= 1 << uint(i)
		default:
			return &EvalError{Instruction: inst, Msg: "table input is not boolean"}
		}
	}

	if int(idx) >= len(inst.Table) {
		return &EvalError{Instruction: inst, Msg: "table index out of range"}
	}

	log.WithField("idx", idx).Debug("table lookup")
	table.WriteValue(inst.Outputs[0], inst.Table[idx])

	return nil
}
