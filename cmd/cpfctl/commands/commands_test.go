package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credito/pkg/cpf"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	t.Run("valid arguments", func(t *testing.T) {
		out, err := run(t, "", "validate", "11144477735", "529.982.247-25")

		require.NoError(t, err)
		assert.Equal(t, "111.444.777-35\tvalid\n529.982.247-25\tvalid\n", out)
	})

	t.Run("any invalid input fails the command", func(t *testing.T) {
		out, err := run(t, "", "validate", "11144477735", "123")

		require.ErrorIs(t, err, ErrInvalid)
		assert.Contains(t, out, "123\tinvalid: CPF must have 11 digits (found 3)")
	})

	t.Run("reads stdin when no arguments", func(t *testing.T) {
		out, err := run(t, "11144477735\n\n  52998224725  \n", "validate")

		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out, "\tvalid"))
	})

	t.Run("json output", func(t *testing.T) {
		out, err := run(t, "", "validate", "--json", "00000000000")

		require.ErrorIs(t, err, ErrInvalid)
		var results []validateOutput
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 1)
		assert.False(t, results[0].Valid)
		assert.Equal(t, "00000000000", results[0].Digits)
		assert.Len(t, results[0].Reasons, 1)
	})
}

func TestFormat(t *testing.T) {
	out, err := run(t, "", "format", "111444777")
	require.NoError(t, err)
	assert.Equal(t, "111.444.777\n", out)

	out, err = run(t, "", "format", "--partial", "1114")
	require.NoError(t, err)
	assert.Equal(t, "111.4\n", out)

	_, err = run(t, "", "format")
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	t.Run("formatted and valid", func(t *testing.T) {
		out, err := run(t, "", "generate", "-n", "5")

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 5)
		for _, line := range lines {
			assert.Len(t, line, 14)
			assert.True(t, cpf.IsValid(line), line)
		}
	})

	t.Run("seeded output is reproducible", func(t *testing.T) {
		first, err := run(t, "", "generate", "-n", "3", "--raw", "--seed", "42")
		require.NoError(t, err)
		second, err := run(t, "", "generate", "-n", "3", "--raw", "--seed", "42")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		for _, line := range strings.Split(strings.TrimSpace(first), "\n") {
			assert.Len(t, line, 11)
		}
	})

	t.Run("count out of range", func(t *testing.T) {
		_, err := run(t, "", "generate", "-n", "0")
		assert.Error(t, err)
	})
}
