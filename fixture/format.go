package fixture

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vktec/slimecheck"
)

// List is a named set of chunks, written as one fixture literal.
type List struct {
	Name   string
	Chunks []slimecheck.ChunkPos
}

type Format string

const (
	// CPP writes std::set<mc::ChunkPos> initializers.
	CPP  Format = "cpp"
	JSON Format = "json"
	YAML Format = "yaml"
	CSV  Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown format")

func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case CPP, JSON, YAML, CSV:
		return f, nil
	}
	return "", fmt.Errorf("%w %q (valid options: cpp, json, yaml, csv)", ErrUnknownFormat, name)
}

func Write(w io.Writer, f Format, lists ...List) error {
	switch f {
	case CPP:
		return writeCPP(w, lists)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(encodeLists(lists))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(encodeLists(lists)); err != nil {
			return err
		}
		return enc.Close()
	case CSV:
		return writeCSV(w, lists)
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
}

func writeCPP(w io.Writer, lists []List) error {
	bw := bufio.NewWriter(w)
	for i, l := range lists {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "\tstd::set<mc::ChunkPos> %s = {\n", l.Name)
		for _, p := range l.Chunks {
			fmt.Fprintf(bw, "\t\tmc::ChunkPos(%d, %d),\n", p.X, p.Z)
		}
		bw.WriteString("\t};\n")
	}
	return bw.Flush()
}

func writeCSV(w io.Writer, lists []List) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"List", "Chunk X", "Chunk Z"})
	for _, l := range lists {
		for _, p := range l.Chunks {
			cw.Write([]string{l.Name, strconv.Itoa(int(p.X)), strconv.Itoa(int(p.Z))})
		}
	}
	cw.Flush()
	return cw.Error()
}

type encodedChunk struct {
	X int32 `json:"x" yaml:"x"`
	Z int32 `json:"z" yaml:"z"`
}

type encodedList struct {
	Name   string         `json:"name" yaml:"name"`
	Chunks []encodedChunk `json:"chunks" yaml:"chunks"`
}

func encodeLists(lists []List) []encodedList {
	out := make([]encodedList, len(lists))
	for i, l := range lists {
		chunks := make([]encodedChunk, len(l.Chunks))
		for j, p := range l.Chunks {
			chunks[j] = encodedChunk{p.X, p.Z}
		}
		out[i] = encodedList{l.Name, chunks}
	}
	return out
}
