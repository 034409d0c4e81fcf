package driver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minicode/interpreter-go/pkg/ast"
)

func TestFormatForPath(t *testing.T) {
	cases := []struct {
		path string
		data string
		want TreeFormat
	}{
		{"tree.json", "", FormatJSON},
		{"tree.YAML", "", FormatYAML},
		{"tree.yml", "{}", FormatYAML},
		{"tree", "  {\"type\": \"Program\"}", FormatJSON},
		{"tree", "type: Program", FormatYAML},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatForPath(tc.path, []byte(tc.data)), tc.path)
	}
}

func TestLoadProgramYAML(t *testing.T) {
	program, err := LoadProgram(filepath.Join("testdata", "square.yml"))
	require.NoError(t, err)
	require.Len(t, program.Body, 6)

	fn, ok := program.Body[2].(*ast.FunctionDefinition)
	require.True(t, ok, "got %T", program.Body[2])
	assert.Equal(t, "side", fn.Name)
	assert.Equal(t, []string{"length"}, fn.Params)

	loop, ok := program.Body[3].(*ast.RepeatStatement)
	require.True(t, ok)
	count, ok := loop.Count.(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, 4.0, count.Value)
}

func TestLoadProgramJSON(t *testing.T) {
	program, err := LoadProgram(filepath.Join("testdata", "polynomials.json"))
	require.NoError(t, err)
	require.Len(t, program.Body, 7)
	def, ok := program.Body[0].(*ast.PolynomialDefinition)
	require.True(t, ok)
	assert.Equal(t, "x + 1", def.Source)
}

func TestLoadProgramErrors(t *testing.T) {
	_, err := LoadProgram(filepath.Join("testdata", "broken.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body[1].value")
	assert.Contains(t, err.Error(), `unsupported node type "Mystery"`)

	_, err = LoadProgram(filepath.Join("testdata", "nope.json"))
	assert.Error(t, err)

	_, err = DecodeProgram([]byte("{"), FormatJSON)
	assert.ErrorContains(t, err, "parse json")

	_, err = DecodeProgram([]byte("x"), TreeFormat("toml"))
	assert.ErrorContains(t, err, "unsupported tree format")
}
