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

package r1cs

import (
	"fmt"
	"strings"

	"github.com/Ethsnarks/ethsnarks-il/field"
)

// Variable is a handle for a single entry in the constraint system's
// assignment vector. It carries no meaning on its own; var(w) in spec terms
// is always a Variable allocated via ConstraintSystem.AllocateVariable.
type Variable int

// Term is one coefficient*variable summand of a LinearCombination.
type Term struct {
	Var   Variable
	Coeff field.Value
}

// LinearCombination is a weighted sum of variables plus a constant, over the
// field: const + Σ coeff_i * var_i. This is the "A", "B", "C" of an R1C
// triple A·B = C.
type LinearCombination struct {
	Const field.Value
	Terms []Term
}

// LC returns the zero linear combination.
func LC() LinearCombination {
	return LinearCombination{Const: field.Zero()}
}

// FromConst returns the linear combination equal to the constant c.
func FromConst(c field.Value) LinearCombination {
	return LinearCombination{Const: c}
}

// FromVar returns the linear combination equal to 1*v.
func FromVar(v Variable) LinearCombination {
	return LinearCombination{Const: field.Zero(), Terms: []Term{{Var: v, Coeff: field.One()}}}
}

// Plus returns l + coeff*v.
func (l LinearCombination) Plus(v Variable, coeff field.Value) LinearCombination {
	terms := make([]Term, len(l.Terms), len(l.Terms)+1)
	copy(terms, l.Terms)

	return LinearCombination{Const: l.Const, Terms: append(terms, Term{Var: v, Coeff: coeff})}
}

// PlusVar returns l + v (coefficient 1).
func (l LinearCombination) PlusVar(v Variable) LinearCombination {
	return l.Plus(v, field.One())
}

// PlusConst returns l + c.
func (l LinearCombination) PlusConst(c field.Value) LinearCombination {
	return LinearCombination{Const: l.Const.Add(c), Terms: l.Terms}
}

// Add returns l + other.
func (l LinearCombination) Add(other LinearCombination) LinearCombination {
	terms := make([]Term, 0, len(l.Terms)+len(other.Terms))
	terms = append(terms, l.Terms...)
	terms = append(terms, other.Terms...)

	return LinearCombination{Const: l.Const.Add(other.Const), Terms: terms}
}

// Sub returns l - other.
func (l LinearCombination) Sub(other LinearCombination) LinearCombination {
	return l.Add(other.Scale(field.One().Neg()))
}

// Scale returns c*l.
func (l LinearCombination) Scale(c field.Value) LinearCombination {
	terms := make([]Term, len(l.Terms))
	for i, t := range l.Terms {
		terms[i] = Term{Var: t.Var, Coeff: t.Coeff.Mul(c)}
	}

	return LinearCombination{Const: l.Const.Mul(c), Terms: terms}
}

// Sum returns the linear combination Σ ls.
func Sum(ls ...LinearCombination) LinearCombination {
	acc := LC()
	for _, l := range ls {
		acc = acc.Add(l)
	}

	return acc
}

// Evaluate computes the value of l given cs's current assignment.
func (l LinearCombination) Evaluate(cs *ConstraintSystem) field.Value {
	acc := l.Const
	for _, t := range l.Terms {
		acc = acc.Add(t.Coeff.Mul(cs.GetValue(t.Var)))
	}

	return acc
}

// String renders l as "c + c1*v1 + c2*v2 + ...", omitting the constant when
// zero and coefficients equal to one, for debug dumps (see
// ConstraintSystem.String).
func (l LinearCombination) String() string {
	var sb strings.Builder

	first := true

	if !l.Const.IsZero() || len(l.Terms) == 0 {
		sb.WriteString(l.Const.String())
		first = false
	}

	for _, t := range l.Terms {
		if !first {
			sb.WriteString(" + ")
		}

		first = false

		if t.Coeff.Equal(field.One()) {
			fmt.Fprintf(&sb, "v%d", t.Var)
		} else {
			fmt.Fprintf(&sb, "%s*v%d", t.Coeff.String(), t.Var)
		}
	}

	return sb.String()
}
