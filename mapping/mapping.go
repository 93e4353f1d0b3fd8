package mapping

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Entry describes the fragment a symbolic name expands to.
type Entry struct {
	File string `yaml:"file"`
	// EdgeLength, when set and non-zero, replaces the fragment's own
	// trailing edge length.
	EdgeLength *float64 `yaml:"edge_length"`
	// Taxon, when set, names the fragment root.
	Taxon string `yaml:"taxon"`
}

// Length returns the edge length as Newick text, or "" when the entry
// carries no usable length. A zero length counts as absent.
func (e Entry) Length() string {
	if e.EdgeLength == nil || *e.EdgeLength == 0 {
		return ""
	}
	return strconv.FormatFloat(*e.EdgeLength, 'f', -1, 64)
}

type Table struct {
	entries map[string]Entry
}

// New copies entries into a new Table.
func New(entries map[string]Entry) *Table {
	return &Table{entries: maps.Clone(entries)}
}

// Lookup returns the entry for name, or a *LookupError.
func (t *Table) Lookup(name string) (Entry, error) {
	if t != nil {
		if e, ok := t.entries[name]; ok {
			return e, nil
		}
	}
	return Entry{}, &LookupError{Name: name}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Names returns the symbolic names in sorted order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.entries))
}

// Decode parses a YAML or JSON mapping document.
func Decode(d []byte) (*Table, error) {
	entries := map[string]Entry{}
	if err := yaml.Unmarshal(d, &entries); err != nil {
		return nil, err
	}
	for name, e := range entries {
		if e.File == "" {
			return nil, fmt.Errorf("%w: %q has no file", ErrEntry, name)
		}
	}
	return New(entries), nil
}

// Load reads and decodes the mapping file at path.
func Load(path string) (*Table, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	t, err := Decode(d)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return t, nil
}

// Find looks for mapping.{yaml,yml,json} in dir and returns the first
// one present.
func Find(dir string) (string, error) {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		p := filepath.Join(dir, "mapping"+ext)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("could not stat %q: %w", p, err)
		}
	}
	return "", fmt.Errorf("%w: no mapping.{yaml,yml,json} in %q", ErrNotFound, dir)
}
