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

// Circuit is the fully-parsed, immutable instruction stream together with
// the wire-id lists declared by the "input"/"nizkinput"/"output" lines
// (spec §3).
type Circuit struct {
	NumWires          uint
	Instructions      []Instruction
	PublicInputWires  []Wire
	PrivateInputWires []Wire
	OutputWires       []Wire
}

// String renders every instruction, one per line, for debug dumps
// (SPEC_FULL §10).
func (c *Circuit) String() string {
	s := "total " + itoa(int(c.NumWires)) + "\n"
	for _, w := range c.PublicInputWires {
		s += "input " + witoa(w) + "\n"
	}

	for _, w := range c.PrivateInputWires {
		s += "nizkinput " + witoa(w) + "\n"
	}

	for _, w := range c.OutputWires {
		s += "output " + witoa(w) + "\n"
	}

	for _, i := range c.Instructions {
		s += i.String() + "\n"
	}

	return s
}
