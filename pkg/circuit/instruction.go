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

import "github.com/Ethsnarks/ethsnarks-il/field"

// Wire names a position in the circuit's flat value vector (spec §3). Wires
// are global and dense-ish; a wire is allocated in the constraint system the
// first time any instruction references it.
type Wire uint32

// Instruction is one immutable, fully-resolved line of the circuit (spec
// §3). Constant is the zero element for every opcode except ConstMul /
// ConstMulNeg; Table is empty for every opcode except Table.
type Instruction struct {
	Opcode   Opcode
	Constant field.Value
	Inputs   []Wire
	Outputs  []Wire
	Table    []field.Value
}

// String renders an instruction close to its original textual form, for
// debug dumps (SPEC_FULL §10).
func (i Instruction) String() string {
	switch i.Opcode {
	case ConstMul:
		return formatInOut(i.Opcode.String()+"-"+i.Constant.Text(16), i.Inputs, i.Outputs)
	case ConstMulNeg:
		// Constant was negated at parse; undo that to print the keyword's own hex.
		return formatInOut(i.Opcode.String()+"-"+i.Constant.Neg().Text(16), i.Inputs, i.Outputs)
	case Table:
		return formatTable(i)
	default:
		return formatInOut(i.Opcode.String(), i.Inputs, i.Outputs)
	}
}

func formatInOut(name string, inputs, outputs []Wire) string {
	s := name + " in " + itoa(len(inputs))
	for _, w := range inputs {
		s += " " + witoa(w)
	}

	s += " out " + itoa(len(outputs))
	for _, w := range outputs {
		s += " " + witoa(w)
	}

	return s
}

func formatTable(i Instruction) string {
	s := "table " + itoa(len(i.Table))
	for _, v := range i.Table {
		s += " " + v.String()
	}

	s += " in"
	for _, w := range i.Inputs {
		s += " " + witoa(w)
	}

	s += " out"
	for _, w := range i.Outputs {
		s += " " + witoa(w)
	}

	return s
}
