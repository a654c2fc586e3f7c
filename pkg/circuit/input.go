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
	"regexp"
	"strings"

	"github.com/Ethsnarks/ethsnarks-il/field"
)

// inputSeparator matches one or more '=' and/or space characters between a
// wire id and its hex value (spec §4.2, §9: deliberately permissive).
var inputSeparator = regexp.MustCompile(`^([0-9]+)[= ]+([0-9a-fA-F]+)$`)

// LoadInputs parses an input-assignment file (spec §6's "<wire-id> <sep>
// <hex-value>" format) and writes each value into table. Duplicate wire-id
// entries are permitted; per spec §4.2, last write wins.
func LoadInputs(r io.Reader, table *WireTable) error {
	scanner := bufio.NewScanner(r)

	var lineNo uint

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			continue
		}

		m := inputSeparator.FindStringSubmatch(trimmed)
		if m == nil {
			return &InputError{Line: lineNo, Text: line, Msg: "expected \"<wire-id>[= ]<hex-value>\""}
		}

		w, err := parseWire(m[1])
		if err != nil {
			return &InputError{Line: lineNo, Text: line, Msg: err.Error()}
		}

		v, err := field.ParseHex(m[2])
		if err != nil {
			return &InputError{Line: lineNo, Text: line, Msg: err.Error()}
		}

		table.WriteValue(w, v)
	}

	return scanner.Err()
}
