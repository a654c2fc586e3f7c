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
	"golang.org/x/term"
)

// Exit codes, per spec §6.
const (
	exitOK               = 0
	exitUsage            = 1
	exitUnsatisfiedOrErr = 2
	exitMissingArgs      = 5
	exitArityMismatch    = 6
)

// rootCmd is the base command when called without any subcommands, in the
// style of the teacher's pkg/cmd/root.go.
var rootCmd = &cobra.Command{
	Use:   "ethsnarks-il",
	Short: "A parser and evaluator for the Pinocchio arithmetic-circuit format.",
	Long:  "A parser, witness evaluator and R1CS constraint emitter for the Pinocchio (\"ethsnarks\") arithmetic-circuit textual format.",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main().
func Execute() {
	configureLogging()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUsage)
	}
}

func configureLogging() {
	log.SetFormatter(&log.TextFormatter{
		DisableColors: !term.IsTerminal(int(os.Stderr.Fd())),
		FullTimestamp: false,
	})
}

// GetFlag reads a required bool flag, in the style of the teacher's
// pkg/cmd/util.go GetFlag/GetString family.
func GetFlag(cmd *cobra.Command, flag string) bool {
	v, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(exitUsage)
	}

	return v
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}
