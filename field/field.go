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

// Package field wraps the prime field used throughout the circuit core: the
// scalar field of BLS12-377, matching the curve the rest of the pack's R1CS
// tooling targets.
package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Value is the concrete field element the circuit core computes over. It
// wraps fr.Element directly: this format has no notion of field selection,
// so there is no abstraction to hide behind.
type Value struct {
	inner fr.Element
}

// Zero is the additive identity.
func Zero() Value {
	return Value{}
}

// One is the multiplicative identity.
func One() Value {
	var v Value
	v.inner.SetOne()

	return v
}

// FromUint64 constructs a Value from a small unsigned integer.
func FromUint64(x uint64) Value {
	var v Value
	v.inner.SetUint64(x)

	return v
}

// FromBigInt reduces x modulo the field's modulus and returns the result.
func FromBigInt(x *big.Int) Value {
	var v Value
	v.inner.SetBigInt(x)

	return v
}

// ParseDecimal parses a decimal (base-10) unsigned integer literal into a
// field element, as used for "table" entry values in the circuit format.
func ParseDecimal(s string) (Value, error) {
	return parseBase(s, 10)
}

// ParseHex parses a hexadecimal unsigned integer literal (no "0x" prefix),
// as used for const-mul constants and input-file values, into a field
// element.
func ParseHex(s string) (Value, error) {
	return parseBase(s, 16)
}

func parseBase(s string, base int) (Value, error) {
	i, ok := new(big.Int).SetString(s, base)
	if !ok {
		return Value{}, fmt.Errorf("invalid base-%d integer literal %q", base, s)
	}

	return FromBigInt(i), nil
}

// Add x + y
func (x Value) Add(y Value) Value {
	var z Value
	z.inner.Add(&x.inner, &y.inner)

	return z
}

// Sub x - y
func (x Value) Sub(y Value) Value {
	var z Value
	z.inner.Sub(&x.inner, &y.inner)

	return z
}

// Mul x * y
func (x Value) Mul(y Value) Value {
	var z Value
	z.inner.Mul(&x.inner, &y.inner)

	return z
}

// Neg -x
func (x Value) Neg() Value {
	var z Value
	z.inner.Neg(&x.inner)

	return z
}

// Inverse x⁻¹, or 0 if x = 0 (gnark-crypto's convention for Inverse-of-zero).
func (x Value) Inverse() Value {
	var z Value
	z.inner.Inverse(&x.inner)

	return z
}

// IsZero reports whether x is the additive identity.
func (x Value) IsZero() bool {
	return x.inner.IsZero()
}

// Equal reports whether x and y represent the same field element.
func (x Value) Equal(y Value) bool {
	return x.inner.Equal(&y.inner)
}

// Bit returns bit i of x's canonical unsigned representation (little-endian,
// i.e. Bit(0) is the least significant bit). Used by the "split" gadget's
// bit decomposition and by the "table" gadget's boolean-input check.
func (x Value) Bit(i uint) bool {
	return x.BigInt().Bit(int(i)) == 1
}

// BigInt returns x's canonical unsigned representation as a big.Int.
func (x Value) BigInt() *big.Int {
	r := new(big.Int)
	x.inner.BigInt(r)

	return r
}

// String returns the decimal representation of x.
func (x Value) String() string {
	return x.inner.String()
}

// Text returns the numerical value of x in the given base.
func (x Value) Text(base int) string {
	return x.BigInt().Text(base)
}
