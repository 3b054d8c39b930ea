package puzzlefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tubesort/liquid"
	"github.com/katalvlaran/tubesort/solver"
)

// Format selects the document encoding.
type Format int

const (
	// YAML is the default encoding.
	YAML Format = iota
	// JSON is used for ".json" files.
	JSON
)

var (
	// ErrMalformed wraps any document that does not describe valid tubes.
	ErrMalformed = errors.New("puzzlefile: malformed puzzle")
	// ErrNoTubes is returned for a document without a tubes list.
	ErrNoTubes = errors.New("puzzlefile: puzzle has no tubes")
)

// Document is the on-disk shape of a puzzle.
type Document struct {
	Name  string           `yaml:"name,omitempty" json:"name,omitempty"`
	Tubes [][]liquid.Color `yaml:"tubes" json:"tubes"`
}

// SolutionDocument is the on-disk shape of a solve result.
type SolutionDocument struct {
	Name   string           `yaml:"name,omitempty" json:"name,omitempty"`
	Solved bool             `yaml:"solved" json:"solved"`
	Moves  []liquid.Action  `yaml:"moves" json:"moves"`
	Final  [][]liquid.Color `yaml:"final" json:"final"`
}

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// Decode reads one puzzle document.
func Decode(r io.Reader, f Format) (Document, liquid.State, error) {
	var doc Document
	var err error
	switch f {
	case JSON:
		err = json.NewDecoder(r).Decode(&doc)
	default:
		err = yaml.NewDecoder(r).Decode(&doc)
	}
	if err != nil {
		return doc, liquid.State{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(doc.Tubes) == 0 {
		return doc, liquid.State{}, ErrNoTubes
	}
	state, err := liquid.FromLayerLists(doc.Tubes)
	if err != nil {
		return doc, liquid.State{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return doc, state, nil
}

// Load reads a puzzle file.
func Load(path string) (Document, liquid.State, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Document{}, liquid.State{}, fmt.Errorf("failed to open puzzle: %w", err)
	}
	defer fh.Close()
	return Decode(fh, FormatFor(path))
}

// Encode writes s as a puzzle document.
func Encode(w io.Writer, f Format, name string, s liquid.State) error {
	return encode(w, f, Document{Name: name, Tubes: s.LayerLists()})
}

// Save writes s to path in the format its extension selects.
func Save(path, name string, s liquid.State) error {
	return writeFile(path, func(w io.Writer) error {
		return Encode(w, FormatFor(path), name, s)
	})
}

// NewSolution converts a solver result into its document form.
func NewSolution(name string, res *solver.Result) SolutionDocument {
	moves := res.Actions
	if moves == nil {
		moves = []liquid.Action{}
	}
	return SolutionDocument{
		Name:   name,
		Solved: res.Solved,
		Moves:  moves,
		Final:  res.Final.LayerLists(),
	}
}

// EncodeSolution writes a solution document.
func EncodeSolution(w io.Writer, f Format, doc SolutionDocument) error {
	return encode(w, f, doc)
}

// SaveSolution writes a solution document to path.
func SaveSolution(path string, doc SolutionDocument) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeSolution(w, FormatFor(path), doc)
	})
}

// DecodeSolution reads a solution document.
func DecodeSolution(r io.Reader, f Format) (SolutionDocument, error) {
	var doc SolutionDocument
	var err error
	switch f {
	case JSON:
		err = json.NewDecoder(r).Decode(&doc)
	default:
		err = yaml.NewDecoder(r).Decode(&doc)
	}
	if err != nil {
		return doc, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc, nil
}

// LoadSolution reads a solution file.
func LoadSolution(path string) (SolutionDocument, error) {
	fh, err := os.Open(path)
	if err != nil {
		return SolutionDocument{}, fmt.Errorf("failed to open solution: %w", err)
	}
	defer fh.Close()
	return DecodeSolution(fh, FormatFor(path))
}

// Result converts the document back into a solver result. Explored and
// Expanded are not recorded and stay zero.
func (d SolutionDocument) Result() (*solver.Result, error) {
	final, err := liquid.FromLayerLists(d.Final)
	if err != nil {
		return nil, fmt.Errorf("%w: final: %w", ErrMalformed, err)
	}
	return &solver.Result{Solved: d.Solved, Actions: d.Moves, Final: final}, nil
}

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(fh); err != nil {
		fh.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return fh.Close()
}
