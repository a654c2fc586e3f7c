package circuit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestCoreEndToEndSatisfied(t *testing.T) {
	circuitPath := writeTempFile(t, "circuit.il",
		"total 3\ninput 0\ninput 1\noutput 2\nmul in 2 0 1 out 1 2\n")
	inputPath := writeTempFile(t, "inputs.txt", "0 3\n1 5\n")

	core, err := NewCore(circuitPath, inputPath)
	require.NoError(t, err)

	assert.Equal(t, 2, core.NumInputs())
	assert.Equal(t, 1, core.NumOutputs())
	assert.Equal(t, []uint32{2}, core.OutputWireIDs())
	assert.True(t, core.ConstraintSystem().IsSatisfied())

	v, err := core.ReadWire(2)
	require.NoError(t, err)
	assert.Equal(t, "15", v.String())
}

func TestCoreWithoutInputFileOnlyEmitsConstraints(t *testing.T) {
	circuitPath := writeTempFile(t, "circuit.il",
		"total 3\ninput 0\ninput 1\noutput 2\nmul in 2 0 1 out 1 2\n")

	core, err := NewCore(circuitPath, "")
	require.NoError(t, err)

	assert.Equal(t, 1, core.ConstraintSystem().NumConstraints())

	_, err = core.ReadWire(2)
	assert.Error(t, err, "reading a wire before evaluation must fail")
}

func TestCoreReadUnknownWire(t *testing.T) {
	circuitPath := writeTempFile(t, "circuit.il", "total 1\ninput 0\noutput 0\n")

	core, err := NewCore(circuitPath, "")
	require.NoError(t, err)

	_, err = core.ReadWire(99)
	assert.Error(t, err)
}

func TestCoreParseErrorPropagates(t *testing.T) {
	circuitPath := writeTempFile(t, "circuit.il", "input 0\n")

	_, err := NewCore(circuitPath, "")
	assert.Error(t, err)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}
