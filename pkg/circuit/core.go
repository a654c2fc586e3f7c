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
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/Ethsnarks/ethsnarks-il/field"
	"github.com/Ethsnarks/ethsnarks-il/pkg/r1cs"
)

// Core is the top-level pipeline of spec §4.6: parse, (optionally) load
// inputs and evaluate, then emit constraints. It owns the Wire Table,
// instruction list, and constraint system for its lifetime (spec §5); no
// later operation may revisit the public-input count fixed during parse.
type Core struct {
	circuit *Circuit
	table   *WireTable
	cs      *r1cs.ConstraintSystem
}

// NewCore runs the full pipeline against circuitPath and, if inputPath is
// non-empty, inputPath: parse, load inputs, evaluate, emit constraints
// (spec §4.6). Parse/input/eval errors are fatal and returned directly;
// there is no partial recovery (spec §7).
func NewCore(circuitPath string, inputPath string) (*Core, error) {
	circuitFile, err := os.Open(circuitPath)
	if err != nil {
		return nil, fmt.Errorf("opening circuit file: %w", err)
	}
	defer circuitFile.Close()

	cs := r1cs.New()
	table := NewWireTable(cs)

	circ, err := ParseCircuit(circuitFile, table, cs)
	if err != nil {
		return nil, err
	}

	if inputPath != "" {
		inputFile, err := os.Open(inputPath)
		if err != nil {
			return nil, fmt.Errorf("opening input file: %w", err)
		}
		defer inputFile.Close()

		if err := LoadInputs(inputFile, table); err != nil {
			return nil, err
		}

		if err := Evaluate(circ, table); err != nil {
			return nil, err
		}
	}

	if err := EmitConstraints(circ, table, cs); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"variables":   cs.NumVariables(),
		"constraints": cs.NumConstraints(),
	}).Debug("emitted constraint system")

	return &Core{circuit: circ, table: table, cs: cs}, nil
}

// NumInputs returns the number of public-input wires declared by "input"
// lines.
func (c *Core) NumInputs() int {
	return len(c.circuit.PublicInputWires)
}

// NumOutputs returns the number of output wires declared by "output" lines.
func (c *Core) NumOutputs() int {
	return len(c.circuit.OutputWires)
}

// OutputWireIDs returns the output wire ids, in declaration order.
func (c *Core) OutputWireIDs() []uint32 {
	ids := make([]uint32, len(c.circuit.OutputWires))
	for i, w := range c.circuit.OutputWires {
		ids[i] = uint32(w)
	}

	return ids
}

// ReadWire returns the evaluated value of wire id. An error is returned if
// the wire was never allocated (i.e. never referenced anywhere in the
// circuit) or never assigned a value (i.e. evaluation was never run, or the
// wire is unreachable from the declared inputs).
func (c *Core) ReadWire(id uint32) (field.Value, error) {
	w := Wire(id)
	if !c.table.Has(w) {
		return field.Zero(), fmt.Errorf("wire %d was never referenced in the circuit", id)
	}

	if !c.table.IsValueSet(w) {
		return field.Zero(), fmt.Errorf("wire %d has no assigned value (was evaluation run?)", id)
	}

	return c.table.ReadValue(w), nil
}

// ConstraintSystem exposes the underlying R1CS sink, so that an external
// proof backend can read the witness and constraint list, or a caller can
// ask IsSatisfied (spec §4.6: "the presence of is_satisfied() is delegated
// to the constraint system").
func (c *Core) ConstraintSystem() *r1cs.ConstraintSystem {
	return c.cs
}

// Circuit returns the parsed circuit, for debug dumps (SPEC_FULL §10).
func (c *Core) Circuit() *Circuit {
	return c.circuit
}
