package fixture

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vktec/slimecheck"
)

var testLists = []List{
	{"slimes", []slimecheck.ChunkPos{{-9, 0}, {10, 1}}},
	{"not_slimes", []slimecheck.ChunkPos{{-3, 4}}},
}

func TestWriteCPP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CPP, testLists...))
	want := "\tstd::set<mc::ChunkPos> slimes = {\n" +
		"\t\tmc::ChunkPos(-9, 0),\n" +
		"\t\tmc::ChunkPos(10, 1),\n" +
		"\t};\n" +
		"\n" +
		"\tstd::set<mc::ChunkPos> not_slimes = {\n" +
		"\t\tmc::ChunkPos(-3, 4),\n" +
		"\t};\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCPPEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CPP, List{Name: "slimes"}))
	assert.Equal(t, "\tstd::set<mc::ChunkPos> slimes = {\n\t};\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, testLists[1]))
	want := `[
  {
    "name": "not_slimes",
    "chunks": [
      {
        "x": -3,
        "z": 4
      }
    ]
  }
]
`
	assert.Equal(t, want, buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, testLists...))

	var got []encodedList
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, encodeLists(testLists), got)
	assert.Contains(t, buf.String(), "name: not_slimes")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, testLists...))
	assert.Equal(t, "List,Chunk X,Chunk Z\nslimes,-9,0\nslimes,10,1\nnot_slimes,-3,4\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"cpp", "json", "yaml", "csv"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}
	_, err := ParseFormat("human")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.ErrorIs(t, Write(&bytes.Buffer{}, Format("xml")), ErrUnknownFormat)
}

type failWriter struct{}

var errWrite = errors.New("disk full")

func (failWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWritePropagatesErrors(t *testing.T) {
	for _, f := range []Format{CPP, JSON, CSV} {
		assert.ErrorIs(t, Write(failWriter{}, f, testLists...), errWrite, "format %s", f)
	}
	// yaml.v3 reports write failures as its own error type.
	assert.Error(t, Write(failWriter{}, YAML, testLists...))
}
