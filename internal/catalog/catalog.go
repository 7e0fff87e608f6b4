// Package catalog holds the ordered chain of levels a learner works through.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var defaultLevels []byte

// document is the on-disk shape of a level table.
type document struct {
	Version int     `yaml:"version"`
	Levels  []Level `yaml:"levels"`
}

// Catalog is an immutable, validated level table. Ids are contiguous and
// ascending from the root id; the order is the prerequisite chain.
type Catalog struct {
	levels []Level
	index  map[int]int
}

// defaultCatalog is the embedded table, set by init().
var defaultCatalog *Catalog

func init() {
	c, err := Load(defaultLevels)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded levels.yaml: %v", err))
	}
	defaultCatalog = c
}

// Default returns the catalog shipped with the binary.
func Default() *Catalog {
	return defaultCatalog
}

// LoadFile reads and validates a level table from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Load parses a YAML level table, checks it against the document schema and
// then runs the structural checks. All problems are reported together.
func Load(data []byte) (*Catalog, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode levels: %w", err)
	}

	if err := validateLevels(doc.Levels); err != nil {
		return nil, err
	}
	return newCatalog(doc.Levels), nil
}

// New builds a catalog from levels already in memory.
func New(levels []Level) (*Catalog, error) {
	if err := validateLevels(levels); err != nil {
		return nil, err
	}
	return newCatalog(levels), nil
}

func newCatalog(levels []Level) *Catalog {
	c := &Catalog{
		levels: make([]Level, len(levels)),
		index:  make(map[int]int, len(levels)),
	}
	copy(c.levels, levels)
	for i, l := range c.levels {
		c.index[l.ID] = i
	}
	return c
}

// Levels returns all levels in chain order.
func (c *Catalog) Levels() []Level {
	out := make([]Level, len(c.levels))
	copy(out, c.levels)
	return out
}

// Get returns the level with the given id.
func (c *Catalog) Get(id int) (Level, bool) {
	i, ok := c.index[id]
	if !ok {
		return Level{}, false
	}
	return c.levels[i], true
}

// Contains reports whether id is part of the catalog.
func (c *Catalog) Contains(id int) bool {
	_, ok := c.index[id]
	return ok
}

// Root returns the first level of the chain. It is always unlocked.
func (c *Catalog) Root() Level {
	return c.levels[0]
}

// First returns the id of the first level.
func (c *Catalog) First() int {
	return c.levels[0].ID
}

// Last returns the id of the last level.
func (c *Catalog) Last() int {
	return c.levels[len(c.levels)-1].ID
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// IDs returns every level id in chain order.
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.levels))
	for i, l := range c.levels {
		ids[i] = l.ID
	}
	return ids
}

// Previous returns the level that gates id, if any.
func (c *Catalog) Previous(id int) (Level, bool) {
	i, ok := c.index[id]
	if !ok || i == 0 {
		return Level{}, false
	}
	return c.levels[i-1], true
}
