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
	"bufio"
	"io"
	"math/bits"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Ethsnarks/ethsnarks-il/field"
	"github.com/Ethsnarks/ethsnarks-il/pkg/r1cs"
)

// arity describes the input/output cardinality rule for a fixed-arity
// opcode (spec §4.1's table). A bound of -1 means "no bound"; every entry
// uses it only as a maximum, so "at least minIn" / "at least minOut".
type arity struct {
	minIn, maxIn int
	minOut, maxOut int
}

var fixedArities = map[string]arity{
	"add":    {2, -1, 1, 1},
	"mul":    {2, 2, 1, 1},
	"xor":    {2, 2, 1, 1},
	"or":     {2, 2, 1, 1},
	"assert": {2, 2, 1, 1},
	"zerop":  {1, 1, 2, 2},
	"split":  {1, 1, 1, -1},
	"pack":   {1, -1, 1, 1},
}

// ParseCircuit streams a circuit file (spec §6's textual format) and
// returns the fully-resolved instruction stream. Every wire referenced by
// any instruction, and every input/output declaration, is allocated a
// variable in cs as a side effect of parsing (spec §4.1), via table.
//
// Line handling follows bufio.Scanner + strings.Fields, in the style of the
// teacher's own line-oriented test-trace readers (pkg/ir/ir_test.go), rather
// than the teacher's full tokenizing lexer (pkg/asm/assembler/lexer.go):
// this format has no nested expression grammar to tokenize.
func ParseCircuit(r io.Reader, table *WireTable, cs *r1cs.ConstraintSystem) (*Circuit, error) {
	var (
		scanner    = bufio.NewScanner(r)
		lineNo     uint
		haveTotal  bool
		circuit    Circuit
	)

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Fields(trimmed)

		if !haveTotal {
			n, err := parseTotal(fields)
			if err != nil {
				return nil, parseErr(lineNo, line, err.Error(), false)
			}

			circuit.NumWires = n
			haveTotal = true

			continue
		}

		switch fields[0] {
		case "input":
			w, err := parseDeclaration(fields)
			if err != nil {
				return nil, parseErr(lineNo, line, err.Error(), false)
			}

			circuit.PublicInputWires = append(circuit.PublicInputWires, w)
			table.Allocate(w)
		case "nizkinput":
			w, err := parseDeclaration(fields)
			if err != nil {
				return nil, parseErr(lineNo, line, err.Error(), false)
			}

			circuit.PrivateInputWires = append(circuit.PrivateInputWires, w)
			table.Allocate(w)
		case "output":
			w, err := parseDeclaration(fields)
			if err != nil {
				return nil, parseErr(lineNo, line, err.Error(), false)
			}

			circuit.OutputWires = append(circuit.OutputWires, w)
			table.Allocate(w)
		case "table":
			inst, err := parseTableLine(fields)
			if err != nil {
				return nil, parseErr(lineNo, line, err.Error(), true)
			}

			allocateInstructionWires(inst, table)
			circuit.Instructions = append(circuit.Instructions, inst)
		default:
			if _, _, err := resolveOpcode(fields[0]); err != nil {
				return nil, parseErr(lineNo, line, err.Error(), false)
			}

			inst, err := parseOpLine(fields)
			if err != nil {
				return nil, parseErr(lineNo, line, err.Error(), true)
			}

			allocateInstructionWires(inst, table)
			circuit.Instructions = append(circuit.Instructions, inst)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !haveTotal {
		return nil, &ParseError{Line: lineNo, Text: "", Msg: "missing \"total <N>\" header"}
	}

	cs.SetNumPublicInputs(len(circuit.PublicInputWires))
	log.WithFields(log.Fields{
		"wires":        circuit.NumWires,
		"instructions": len(circuit.Instructions),
		"inputs":       len(circuit.PublicInputWires),
		"nizkinputs":   len(circuit.PrivateInputWires),
		"outputs":      len(circuit.OutputWires),
	}).Debug("parsed circuit")

	return &circuit, nil
}

func allocateInstructionWires(inst Instruction, table *WireTable) {
	for _, w := range inst.Inputs {
		table.Allocate(w)
	}

	for _, w := range inst.Outputs {
		table.Allocate(w)
	}
}

func parseErr(line uint, text, msg string, arityMismatch bool) error {
	return &ParseError{Line: line, Text: text, Msg: msg, ArityMismatch: arityMismatch}
}

func parseTotal(fields []string) (uint, error) {
	if len(fields) != 2 || fields[0] != "total" {
		return 0, errf("expected \"total <N>\" header")
	}

	return parseWireCount(fields[1])
}

func parseDeclaration(fields []string) (Wire, error) {
	if len(fields) != 2 {
		return 0, errf("expected \"%s <w>\"", fields[0])
	}

	return parseWire(fields[1])
}

// parseOpLine handles "<op> in <n> <w...> out <m> <w...>", including the
// const-mul[-neg]-<HEX> opcode family (spec §4.1 rule 7).
func parseOpLine(fields []string) (Instruction, error) {
	op, constant, err := resolveOpcode(fields[0])
	if err != nil {
		return Instruction{}, err
	}

	if len(fields) < 4 || fields[1] != "in" {
		return Instruction{}, errf("expected \"%s in <n> ...\"", fields[0])
	}

	n, err := parseCount(fields[2])
	if err != nil {
		return Instruction{}, err
	}

	if len(fields) < 3+n+2 {
		return Instruction{}, errf("truncated input wire list")
	}

	inputs, err := parseWires(fields[3 : 3+n])
	if err != nil {
		return Instruction{}, err
	}

	rest := fields[3+n:]
	if len(rest) < 2 || rest[0] != "out" {
		return Instruction{}, errf("expected \"out <m> ...\" after inputs")
	}

	m, err := parseCount(rest[1])
	if err != nil {
		return Instruction{}, err
	}

	if len(rest) != 2+m {
		return Instruction{}, errf("declared output count %d does not match %d wires given", m, len(rest)-2)
	}

	outputs, err := parseWires(rest[2:])
	if err != nil {
		return Instruction{}, err
	}

	if err := checkArity(op, len(inputs), len(outputs)); err != nil {
		return Instruction{}, err
	}

	return Instruction{Opcode: op, Constant: constant, Inputs: inputs, Outputs: outputs}, nil
}

// resolveOpcode maps an opcode keyword (or const-mul[-neg]-<HEX> family
// member) to its Opcode and, for the const-mul family, the field constant
// encoded in the keyword's hex suffix (spec §4.1 rule 7).
func resolveOpcode(name string) (Opcode, field.Value, error) {
	switch name {
	case "add":
		return Add, field.Zero(), nil
	case "mul":
		return Mul, field.Zero(), nil
	case "xor":
		return Xor, field.Zero(), nil
	case "or":
		return Or, field.Zero(), nil
	case "assert":
		return Assert, field.Zero(), nil
	case "pack":
		return Pack, field.Zero(), nil
	case "zerop":
		return Zerop, field.Zero(), nil
	case "split":
		return Split, field.Zero(), nil
	}

	const negPrefix = "const-mul-neg-"
	const posPrefix = "const-mul-"

	if strings.HasPrefix(name, negPrefix) {
		hex := name[len(negPrefix):]

		k, err := field.ParseHex(hex)
		if err != nil {
			return 0, field.Zero(), errf("invalid const-mul-neg constant %q: %v", hex, err)
		}

		return ConstMulNeg, k.Neg(), nil
	}

	if strings.HasPrefix(name, posPrefix) {
		hex := name[len(posPrefix):]

		k, err := field.ParseHex(hex)
		if err != nil {
			return 0, field.Zero(), errf("invalid const-mul constant %q: %v", hex, err)
		}

		return ConstMul, k, nil
	}

	return 0, field.Zero(), errf("unknown opcode %q", name)
}

func checkArity(op Opcode, nIn, nOut int) error {
	name := op.String()
	if op == ConstMul || op == ConstMulNeg {
		name = "const-mul[-neg]"
	}

	if op == ConstMul || op == ConstMulNeg {
		if nIn != 1 || nOut != 1 {
			return errf("%s requires exactly 1 input and 1 output", name)
		}

		return nil
	}

	a, ok := fixedArities[op.String()]
	if !ok {
		return errf("no arity rule for opcode %q", name)
	}

	if a.minIn != -1 && nIn < a.minIn || (a.maxIn != -1 && nIn > a.maxIn) {
		return errf("%s requires %s inputs, got %d", name, describeArity(a.minIn, a.maxIn), nIn)
	}

	if a.minOut != -1 && nOut < a.minOut || (a.maxOut != -1 && nOut > a.maxOut) {
		return errf("%s requires %s outputs, got %d", name, describeArity(a.minOut, a.maxOut), nOut)
	}

	return nil
}

func describeArity(minV, maxV int) string {
	if minV == maxV {
		return "exactly " + strconv.Itoa(minV)
	}

	if maxV == -1 {
		return "at least " + strconv.Itoa(minV)
	}

	return "between " + strconv.Itoa(minV) + " and " + strconv.Itoa(maxV)
}

// parseTableLine handles "table <k> <v0 ... vk-1> in <w0 ... wm-1> out <w_out>"
// (spec §4.1 rule 6). Only k in {2, 4, 8} is supported; k in {0, 1, 16, ...}
// is rejected as unsupported (spec §9).
func parseTableLine(fields []string) (Instruction, error) {
	if len(fields) < 2 {
		return Instruction{}, errf("expected \"table <k> ...\"")
	}

	k, err := parseCount(fields[1])
	if err != nil {
		return Instruction{}, err
	}

	if k != 2 && k != 4 && k != 8 {
		return Instruction{}, errf("unsupported table size %d (only 2, 4, 8 are supported)", k)
	}

	m := bits.Len(uint(k)) - 1 // k is a power of two in {2,4,8}, so m in {1,2,3}

	if len(fields) < 2+k {
		return Instruction{}, errf("truncated table value list")
	}

	values := make([]field.Value, k)

	for i, s := range fields[2 : 2+k] {
		v, err := field.ParseDecimal(s)
		if err != nil {
			return Instruction{}, errf("invalid table value %q: %v", s, err)
		}

		values[i] = v
	}

	rest := fields[2+k:]
	if len(rest) != 2+m+1 || rest[0] != "in" || rest[1+m] != "out" {
		return Instruction{}, errf("expected \"in <%d wires> out <1 wire>\" after table values", m)
	}

	inputs, err := parseWires(rest[1 : 1+m])
	if err != nil {
		return Instruction{}, err
	}

	outputs, err := parseWires(rest[2+m:])
	if err != nil {
		return Instruction{}, err
	}

	return Instruction{Opcode: Table, Inputs: inputs, Outputs: outputs, Table: values}, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errf("invalid count %q", s)
	}

	return n, nil
}

func parseWireCount(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errf("invalid wire count %q", s)
	}

	return uint(n), nil
}

func parseWire(s string) (Wire, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errf("invalid wire id %q", s)
	}

	return Wire(n), nil
}

func parseWires(ss []string) ([]Wire, error) {
	ws := make([]Wire, len(ss))

	for i, s := range ss {
		w, err := parseWire(s)
		if err != nil {
			return nil, err
		}

		ws[i] = w
	}

	return ws, nil
}
