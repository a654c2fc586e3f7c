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
	"github.com/Ethsnarks/ethsnarks-il/field"
	"github.com/Ethsnarks/ethsnarks-il/pkg/r1cs"
)

// WireTable maps Wire identifiers onto constraint-system Variable handles
// (spec §4.5). Allocation is lazy and insertion-only: a wire is allocated
// the first time it is referenced by any instruction, matching the
// teacher's own newInternalVariable "allocate on first sight" convention
// (frontend/cs/r1cs/compiler.go) rather than requiring every wire to be
// declared up-front.
type WireTable struct {
	cs  *r1cs.ConstraintSystem
	ids map[Wire]r1cs.Variable
}

// NewWireTable returns an empty table backed by cs. All variables it
// allocates live in cs's assignment vector.
func NewWireTable(cs *r1cs.ConstraintSystem) *WireTable {
	return &WireTable{cs: cs, ids: make(map[Wire]r1cs.Variable)}
}

// Allocate returns w's variable, allocating a fresh one in the constraint
// system if w has not been seen before.
func (t *WireTable) Allocate(w Wire) r1cs.Variable {
	if v, ok := t.ids[w]; ok {
		return v
	}

	v := t.cs.AllocateVariable()
	t.ids[w] = v

	return v
}

// Lookup is an alias for Allocate: per spec §4.5 a lookup auto-allocates if
// the wire is missing, so the two operations coincide.
func (t *WireTable) Lookup(w Wire) r1cs.Variable {
	return t.Allocate(w)
}

// Has reports whether w has already been allocated a variable.
func (t *WireTable) Has(w Wire) bool {
	_, ok := t.ids[w]
	return ok
}

// Len returns the number of distinct wires allocated so far.
func (t *WireTable) Len() int {
	return len(t.ids)
}

// ReadValue returns w's current field value. w must already have an
// allocated variable with a defined value (spec §3: every wire with a Wire
// Table entry has a defined value after evaluation).
func (t *WireTable) ReadValue(w Wire) field.Value {
	return t.cs.GetValue(t.Lookup(w))
}

// WriteValue stores val as w's value, allocating w if necessary.
func (t *WireTable) WriteValue(w Wire, val field.Value) {
	t.cs.SetValue(t.Allocate(w), val)
}

// IsValueSet reports whether w has been written to (via WriteValue or the
// constraint system directly).
func (t *WireTable) IsValueSet(w Wire) bool {
	v, ok := t.ids[w]
	return ok && t.cs.IsValueSet(v)
}
