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

// Package r1cs implements the "constraint system" the circuit core treats as
// an external sink (spec §6): a rank-1 constraint system accepting triples
// A·B = C over LinearCombinations of Variables, plus the assignment vector
// those variables are solved against. It is grounded on the teacher's own
// R1CS-building conventions (frontend/cs/r1cs/compiler.go's
// newInternalVariable/addConstraint pattern) but carries a plain,
// uncompressed representation suitable for a small wire-level front end
// rather than gnark's bytecode-compressed production encoding.
package r1cs

import (
	"fmt"
	"strings"

	"github.com/Ethsnarks/ethsnarks-il/field"
)

// Constraint is a single rank-1 constraint A·B = C.
type Constraint struct {
	A, B, C LinearCombination
	// Handle names the constraint for diagnostics (e.g. "split:bit0", "table:lut4").
	Handle string
}

// Evaluate reports whether this constraint holds under cs's current
// assignment.
func (c Constraint) Evaluate(cs *ConstraintSystem) bool {
	lhs := c.A.Evaluate(cs).Mul(c.B.Evaluate(cs))
	rhs := c.C.Evaluate(cs)

	return lhs.Equal(rhs)
}

// ConstraintSystem is an in-memory R1CS sink. Variables are allocated
// lazily by callers (the Wire Table allocates one per wire on first
// reference); the system itself has no notion of wires, only Variables.
type ConstraintSystem struct {
	values     []field.Value
	set        []bool
	numPublic  int
	constraints []Constraint
}

// New returns an empty constraint system.
func New() *ConstraintSystem {
	return &ConstraintSystem{}
}

// AllocateVariable allocates a fresh variable and returns its handle. The
// variable's value is initially undefined; GetValue panics if read before a
// SetValue.
func (cs *ConstraintSystem) AllocateVariable() Variable {
	cs.values = append(cs.values, field.Zero())
	cs.set = append(cs.set, false)

	return Variable(len(cs.values) - 1)
}

// SetValue assigns val to v, overwriting any previous assignment.
func (cs *ConstraintSystem) SetValue(v Variable, val field.Value) {
	cs.values[v] = val
	cs.set[v] = true
}

// GetValue returns v's current assigned value. Panics if v was never set,
// since spec §3 requires every wire with a Wire Table entry to have a
// defined value after evaluation, and any read before that point is a core
// bug, not a recoverable error.
func (cs *ConstraintSystem) GetValue(v Variable) field.Value {
	if !cs.set[v] {
		panic(fmt.Sprintf("r1cs: variable %d read before being set", v))
	}

	return cs.values[v]
}

// IsValueSet reports whether v has been assigned a value.
func (cs *ConstraintSystem) IsValueSet(v Variable) bool {
	return cs.set[v]
}

// AddConstraint records the rank-1 constraint a·b = c. handle, if given,
// names the constraint for diagnostics.
func (cs *ConstraintSystem) AddConstraint(a, b, c LinearCombination, handle ...string) {
	h := ""
	if len(handle) > 0 {
		h = handle[0]
	}

	cs.constraints = append(cs.constraints, Constraint{A: a, B: b, C: c, Handle: h})
}

// SetNumPublicInputs fixes the number of public-input variables registered
// with this system. Per spec §5, this is set once after parsing and never
// revisited.
func (cs *ConstraintSystem) SetNumPublicInputs(n int) {
	cs.numPublic = n
}

// NumPublicInputs returns the count set via SetNumPublicInputs.
func (cs *ConstraintSystem) NumPublicInputs() int {
	return cs.numPublic
}

// NumVariables returns the total number of allocated variables.
func (cs *ConstraintSystem) NumVariables() int {
	return len(cs.values)
}

// NumConstraints returns the total number of emitted constraints.
func (cs *ConstraintSystem) NumConstraints() int {
	return len(cs.constraints)
}

// Constraints returns the constraints emitted so far, in emission order.
func (cs *ConstraintSystem) Constraints() []Constraint {
	return cs.constraints
}

// IsSatisfied reports whether every constraint holds under the current
// assignment. Per spec §7, an unsatisfied system is a returnable value, not
// an error: the caller (e.g. a proof backend) may still want the witness.
func (cs *ConstraintSystem) IsSatisfied() bool {
	for _, c := range cs.constraints {
		if !c.Evaluate(cs) {
			return false
		}
	}

	return true
}

// FirstUnsatisfied returns the index and constraint of the first constraint
// (in emission order) that does not hold, or (-1, Constraint{}) if all
// constraints are satisfied. Used by the CLI harness's verbose diagnostics.
func (cs *ConstraintSystem) FirstUnsatisfied() (int, Constraint) {
	for i, c := range cs.constraints {
		if !c.Evaluate(cs) {
			return i, c
		}
	}

	return -1, Constraint{}
}

// String renders the constraint system as one "[handle] (A) * (B) = (C)"
// line per constraint (an unnamed constraint shows as "#<index>"), for debug
// dumps (SPEC_FULL §10).
func (cs *ConstraintSystem) String() string {
	var sb strings.Builder

	for i, c := range cs.constraints {
		name := c.Handle
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}

		fmt.Fprintf(&sb, "[%s] (%s) * (%s) = (%s)\n", name, c.A.String(), c.B.String(), c.C.String())
	}

	return sb.String()
}
