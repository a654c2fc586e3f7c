package circuit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ethsnarks/ethsnarks-il/field"
	"github.com/Ethsnarks/ethsnarks-il/pkg/r1cs"
)

func TestLoadInputsPermissiveSeparator(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"equals sign", "3=a\n"},
		{"space", "3 a\n"},
		{"equals and space", "3 = a\n"},
		{"multiple spaces", "3    a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := r1cs.New()
			table := NewWireTable(cs)
			table.Allocate(3)

			assert.NoError(t, LoadInputs(strings.NewReader(tt.line), table))
			assert.Equal(t, field.FromUint64(10).String(), table.ReadValue(3).String())
		})
	}
}

func TestLoadInputsLastWriteWins(t *testing.T) {
	cs := r1cs.New()
	table := NewWireTable(cs)
	table.Allocate(0)

	assert.NoError(t, LoadInputs(strings.NewReader("0 1\n0 2\n"), table))
	assert.Equal(t, field.FromUint64(2).String(), table.ReadValue(0).String())
}

func TestLoadInputsMalformedLine(t *testing.T) {
	cs := r1cs.New()
	table := NewWireTable(cs)

	err := LoadInputs(strings.NewReader("not-a-line\n"), table)
	assert.Error(t, err)

	var ierr *InputError
	assert.ErrorAs(t, err, &ierr)
}

func TestLoadInputsBlankLinesSkipped(t *testing.T) {
	cs := r1cs.New()
	table := NewWireTable(cs)
	table.Allocate(0)

	assert.NoError(t, LoadInputs(strings.NewReader("\n0 5\n\n"), table))
	assert.Equal(t, field.FromUint64(5).String(), table.ReadValue(0).String())
}
