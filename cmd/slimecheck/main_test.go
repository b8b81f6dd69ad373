package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut, zap.NewNop())
	cmd.SetArgs(args)
	code = exitCode(cmd, cmd.Execute())
	return out.String(), errOut.String(), code
}

func TestScanMode(t *testing.T) {
	stdout, _, code := execute(t, "0")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 49)
	assert.Equal(t, "\tstd::set<mc::ChunkPos> slimes = {", lines[0])
	assert.Equal(t, "\t\tmc::ChunkPos(-9, 0),", lines[1])
	assert.Equal(t, "\t\tmc::ChunkPos(10, 1),", lines[47])
	assert.Equal(t, "\t};", lines[48])

	alias, _, code := execute(t, "scan", "-j", "1")
	require.Equal(t, 0, code)
	assert.Equal(t, stdout, alias)
}

func TestSampleMode(t *testing.T) {
	stdout, _, code := execute(t, "1", "--sample-seed", "1", "--slimes", "3", "--not-slimes", "3")
	require.Equal(t, 0, code)
	want := "\tstd::set<mc::ChunkPos> slimes = {\n" +
		"\t\tmc::ChunkPos(7437, 1302),\n" +
		"\t\tmc::ChunkPos(3358, 8229),\n" +
		"\t\tmc::ChunkPos(-2992, -8797),\n" +
		"\t};\n" +
		"\n" +
		"\tstd::set<mc::ChunkPos> not_slimes = {\n" +
		"\t\tmc::ChunkPos(-5510, 8076),\n" +
		"\t\tmc::ChunkPos(8116, -2904),\n" +
		"\t\tmc::ChunkPos(-379, 7699),\n" +
		"\t};\n"
	assert.Equal(t, want, stdout)
}

func TestSampleModeWallClockSeed(t *testing.T) {
	stdout, _, code := execute(t, "sample", "--slimes", "2", "--not-slimes", "1")
	require.Equal(t, 0, code)
	assert.Equal(t, 3, strings.Count(stdout, "mc::ChunkPos("))
}

func TestJSONFormat(t *testing.T) {
	stdout, _, code := execute(t, "0", "-f", "json", "--radius", "0")
	require.Equal(t, 0, code)
	assert.JSONEq(t, `[{"name": "slimes", "chunks": []}]`, stdout)
}

func TestWideFormula(t *testing.T) {
	stdout, _, code := execute(t, "0", "--formula", "wide", "--seed", "42", "--radius", "10")
	require.Equal(t, 0, code)
	java, _, _ := execute(t, "0")
	assert.Equal(t, java, stdout)
}

func TestDraw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slimes.png")
	_, _, code := execute(t, "0", "--draw", path)
	require.Equal(t, 0, code)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 21, img.Bounds().Dx())
	assert.Equal(t, 21, img.Bounds().Dy())
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown mode", []string{"2"}},
		{"missing mode", nil},
		{"extra argument", []string{"0", "1"}},
		{"unknown flag", []string{"0", "--nope"}},
		{"bad format", []string{"0", "-f", "xml"}},
		{"bad formula", []string{"0", "--formula", "bedrock"}},
		{"draw in sample mode", []string{"1", "--draw", "x.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := execute(t, tt.args...)
			assert.Equal(t, 2, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Error:")
			assert.Contains(t, stderr, "Usage:")
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	stdout, stderr, code := execute(t, "0", "--radius", "-1")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid radius")
	assert.NotContains(t, stderr, "Usage:")

	_, stderr, code = execute(t, "1", "--radius", "2", "--slimes", "50", "--max-attempts", "1000")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "sample exhausted")
}
