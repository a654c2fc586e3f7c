package circuit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ethsnarks/ethsnarks-il/pkg/r1cs"
)

func parseString(t *testing.T, src string) (*Circuit, *WireTable, *r1cs.ConstraintSystem) {
	t.Helper()

	cs := r1cs.New()
	table := NewWireTable(cs)
	c, err := ParseCircuit(strings.NewReader(src), table, cs)
	assert.NoError(t, err)

	return c, table, cs
}

func TestParseHeaderAndDeclarations(t *testing.T) {
	src := "total 8\n" +
		"input 0\n" +
		"input 1\n" +
		"nizkinput 2\n" +
		"output 3\n" +
		"mul in 2 0 1 out 1 3\n"

	c, _, cs := parseString(t, src)

	assert.EqualValues(t, 8, c.NumWires)
	assert.Equal(t, []Wire{0, 1}, c.PublicInputWires)
	assert.Equal(t, []Wire{2}, c.PrivateInputWires)
	assert.Equal(t, []Wire{3}, c.OutputWires)
	assert.Len(t, c.Instructions, 1)
	assert.Equal(t, 2, cs.NumPublicInputs(), "public input count tracks only \"input\" declarations")
}

func TestParseMissingTotalHeader(t *testing.T) {
	cs := r1cs.New()
	table := NewWireTable(cs)
	_, err := ParseCircuit(strings.NewReader("input 0\n"), table, cs)

	assert.Error(t, err)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
	assert.False(t, perr.ArityMismatch)
}

func TestParseBlankAndCommentLinesIgnored(t *testing.T) {
	src := "total 2\n\n# a comment\ninput 0\noutput 1\n"
	c, _, _ := parseString(t, src)

	assert.Equal(t, []Wire{0}, c.PublicInputWires)
	assert.Equal(t, []Wire{1}, c.OutputWires)
}

func TestParseArityViolations(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"mul too few inputs", "total 4\nmul in 1 0 out 1 2\n"},
		{"mul too many outputs", "total 4\nmul in 2 0 1 out 2 2 3\n"},
		{"assert wrong output count", "total 4\nassert in 2 0 1 out 0\n"},
		{"zerop wrong output count", "total 4\nzerop in 1 0 out 1 1\n"},
		{"split no outputs", "total 4\nsplit in 1 0 out 0\n"},
		{"const-mul wrong arity", "total 4\nconst-mul-05 in 2 0 1 out 1 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := r1cs.New()
			table := NewWireTable(cs)
			_, err := ParseCircuit(strings.NewReader(tt.src), table, cs)

			assert.Error(t, err)

			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
			assert.True(t, perr.ArityMismatch, "arity violations must set ArityMismatch")
		})
	}
}

func TestParseUnknownOpcode(t *testing.T) {
	cs := r1cs.New()
	table := NewWireTable(cs)
	_, err := ParseCircuit(strings.NewReader("total 2\nfrobnicate in 1 0 out 1 1\n"), table, cs)

	assert.Error(t, err)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
	assert.False(t, perr.ArityMismatch)
}

func TestParseTableSizeRejections(t *testing.T) {
	for _, k := range []int{0, 1, 16} {
		cs := r1cs.New()
		table := NewWireTable(cs)
		pad := k
		if pad < 0 {
			pad = 0
		}

		src := "total 4\ntable " + itoa(k) + strings.Repeat(" 0", pad) + " in 1 0 out 1\n"
		_, err := ParseCircuit(strings.NewReader(src), table, cs)

		assert.Errorf(t, err, "table size %d must be rejected", k)
	}
}

func TestParseConstMulPrefixes(t *testing.T) {
	c, _, _ := parseString(t, "total 2\nconst-mul-ff in 1 0 out 1 1\n")
	assert.Equal(t, ConstMul, c.Instructions[0].Opcode)
	assert.Equal(t, "255", c.Instructions[0].Constant.String())

	c, _, _ = parseString(t, "total 2\nconst-mul-neg-ff in 1 0 out 1 1\n")
	assert.Equal(t, ConstMulNeg, c.Instructions[0].Opcode)
	assert.NotEqual(t, "255", c.Instructions[0].Constant.String())
}
