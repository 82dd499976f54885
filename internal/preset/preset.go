package preset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/novan/internal/gen"
	"github.com/roach88/novan/internal/phon"
)

//go:embed schema.cue
var schemaCUE string

var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor CUE.
	ErrUnsupportedFormat = errors.New("unsupported preset format")
	// ErrDuplicateName is returned when two presets share a name.
	ErrDuplicateName = errors.New("duplicate preset name")
	// ErrEmptyDocument is returned for a file with no document at all.
	ErrEmptyDocument = errors.New("empty preset document")
)

// Document is the on-disk form of a preset file.
type Document struct {
	Presets []Entry `yaml:"presets" json:"presets"`
}

// Entry is one preset as written in a file. Weights may be partial.
type Entry struct {
	Name    string             `yaml:"name" json:"name"`
	Weights map[string]float64 `yaml:"weights" json:"weights"`
}

// Format selects the file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Default returns the preset every store starts with: DefaultPresetName with
// every weight at gen.DefaultWeight.
func Default() gen.Preset {
	return gen.Preset{Name: gen.DefaultPresetName, Weights: gen.DefaultWeights(phon.Novan())}
}

// Load reads a preset file. The format follows the file extension.
func Load(path string) ([]gen.Preset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}
	presets, err := Parse(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return presets, nil
}

// Parse decodes and validates a preset document. filename is only used in
// CUE error positions.
func Parse(data []byte, format Format, filename string) ([]gen.Preset, error) {
	var (
		doc Document
		err error
	)
	switch format {
	case FormatYAML:
		doc, err = decodeYAML(data)
	case FormatCUE:
		doc, err = decodeCUE(data, filename)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}
	return toPresets(doc)
}

func decodeYAML(data []byte) (Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, ErrEmptyDocument
		}
		return doc, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return doc, nil
}

func decodeCUE(data []byte, filename string) (Document, error) {
	var doc Document
	ctx := cuecontext.New()

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return doc, fmt.Errorf("failed to compile CUE: %s", cueerrors.Details(err, nil))
	}

	v = v.Unify(schema(ctx))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return doc, fmt.Errorf("invalid preset document: %s", cueerrors.Details(err, nil))
	}
	if err := v.Decode(&doc); err != nil {
		return doc, fmt.Errorf("failed to decode CUE: %w", err)
	}
	return doc, nil
}

// schema returns the #Document definition, with #Symbols bound to the
// symbols of the Novan alphabet.
func schema(ctx *cue.Context) cue.Value {
	return schemaSource(ctx).LookupPath(cue.ParsePath("#Document"))
}

func schemaSource(ctx *cue.Context) cue.Value {
	src := schemaCUE + fmt.Sprintf("\n#Symbols: %q\n", phon.Novan().String())
	return ctx.CompileString(src, cue.Filename("schema.cue"))
}

// Validate checks doc against the CUE schema and rejects duplicate names.
func Validate(doc Document) error {
	// Encode turns nil maps and slices into null, which the schema rejects
	presets := make([]Entry, len(doc.Presets))
	for i, p := range doc.Presets {
		if p.Weights == nil {
			p.Weights = map[string]float64{}
		}
		presets[i] = p
	}
	doc.Presets = presets

	ctx := cuecontext.New()
	v := ctx.Encode(doc)
	if err := v.Err(); err != nil {
		return fmt.Errorf("failed to encode preset document: %w", err)
	}

	v = schema(ctx).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid preset document: %s", cueerrors.Details(err, nil))
	}

	seen := make(map[string]bool, len(doc.Presets))
	for _, p := range doc.Presets {
		if seen[p.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

func toPresets(doc Document) ([]gen.Preset, error) {
	a := phon.Novan()
	out := make([]gen.Preset, 0, len(doc.Presets))
	for _, e := range doc.Presets {
		w, err := gen.ParseWeights(a, e.Weights)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", e.Name, err)
		}
		out = append(out, gen.Preset{Name: e.Name, Weights: w})
	}
	return out, nil
}

// FromPresets converts presets to their file form. Every weight is written,
// keyed by symbol.
func FromPresets(presets []gen.Preset) Document {
	doc := Document{Presets: make([]Entry, 0, len(presets))}
	for _, p := range presets {
		doc.Presets = append(doc.Presets, Entry{Name: p.Name, Weights: p.Weights.Strings()})
	}
	return doc
}

// Marshal validates presets and encodes them as YAML. Presets keep their
// order; weight keys are sorted.
func Marshal(presets []gen.Preset) ([]byte, error) {
	doc := FromPresets(presets)
	if err := Validate(doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes presets to path as YAML.
func Save(path string, presets []gen.Preset) error {
	if format, err := FormatOf(path); err != nil {
		return err
	} else if format != FormatYAML {
		return fmt.Errorf("%w: presets are saved as YAML, got %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := Marshal(presets)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}
	return nil
}

// Names returns the preset names in sorted order.
func Names(presets []gen.Preset) []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}
