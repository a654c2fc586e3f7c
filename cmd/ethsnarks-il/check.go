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

package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Ethsnarks/ethsnarks-il/pkg/circuit"
)

// checkCmd loads a circuit (and, optionally, an input assignment), runs the
// full Core pipeline, and reports whether the resulting R1CS is satisfied
// (spec §6).
var checkCmd = &cobra.Command{
	Use:   "check <circuit-file> [input-file]",
	Short: "Parse a circuit, optionally evaluate it against an input file, and check R1CS satisfiability.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(exitMissingArgs)
		}

		circuitPath := args[0]

		var inputPath string
		if len(args) >= 2 {
			inputPath = args[1]
		}

		core, err := circuit.NewCore(circuitPath, inputPath)
		if err != nil {
			reportError(err)
			os.Exit(exitCodeFor(err))
		}

		log.Debug(core.Circuit().String())
		log.Debug(core.ConstraintSystem().String())

		if inputPath == "" {
			log.Debug("no input file given; constraints emitted without a witness")
			fmt.Println("constraints emitted (no witness to check)")
			os.Exit(exitOK)
		}

		if core.ConstraintSystem().IsSatisfied() {
			fmt.Println("satisfied")
			os.Exit(exitOK)
		}

		idx, failed := core.ConstraintSystem().FirstUnsatisfied()
		fmt.Printf("unsatisfied: constraint %d (%s) does not hold\n", idx, failed.Handle)
		os.Exit(exitUnsatisfiedOrErr)
	},
}

// exitCodeFor maps a Core construction error to the spec §6 exit code: an
// arity-mismatch parse error maps to 6, any other parse/input/eval error
// maps to 2.
func exitCodeFor(err error) int {
	if pe, ok := err.(*circuit.ParseError); ok && pe.ArityMismatch {
		return exitArityMismatch
	}

	return exitUnsatisfiedOrErr
}

func reportError(err error) {
	switch e := err.(type) {
	case *circuit.ParseError:
		log.WithField("line", e.Line).Error(e.Msg)
	case *circuit.InputError:
		log.WithField("line", e.Line).Error(e.Msg)
	case *circuit.EvalError:
		log.WithField("instruction", e.Instruction.Opcode).Error(e.Msg)
	default:
		log.Error(err)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
