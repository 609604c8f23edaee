package world

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/voxelcast/voxelcast/internal/core/observability/log"
	"github.com/voxelcast/voxelcast/pkg/geometry"
)

var (
	ErrEmptyPalette   = errors.New("world: palette must define at least one block type")
	ErrDuplicateBlock = errors.New("world: duplicate block id or name in palette")
	ErrUnknownBlock   = errors.New("world: layer references a block not in the palette")
)

// BlockType describes one palette entry.
type BlockType struct {
	ID    BlockID `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Solid bool    `json:"solid" yaml:"solid"`
}

// Palette maps block IDs to their types. Unknown IDs read as non-solid.
type Palette struct {
	byID   map[BlockID]BlockType
	byName map[string]BlockID
}

// NewPalette builds a palette, rejecting duplicate IDs or names.
func NewPalette(types []BlockType) (*Palette, error) {
	if len(types) == 0 {
		return nil, ErrEmptyPalette
	}

	p := &Palette{
		byID:   make(map[BlockID]BlockType, len(types)),
		byName: make(map[string]BlockID, len(types)),
	}
	for _, bt := range types {
		if _, exists := p.byID[bt.ID]; exists {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateBlock, bt.ID)
		}
		if _, exists := p.byName[bt.Name]; exists {
			return nil, fmt.Errorf("%w: name %q", ErrDuplicateBlock, bt.Name)
		}
		p.byID[bt.ID] = bt
		p.byName[bt.Name] = bt.ID
	}
	return p, nil
}

// Solid reports whether the given block ID is solid.
func (p *Palette) Solid(id BlockID) bool {
	return p.byID[id].Solid
}

// Lookup resolves a block name to its ID.
func (p *Palette) Lookup(name string) (BlockID, bool) {
	id, ok := p.byName[name]
	return id, ok
}

// Layer fills a horizontal slab of the world at build time: block rows
// y in [FromY, ToY] over x,z in [0, Extent).
type Layer struct {
	Block  string `json:"block" yaml:"block"`
	FromY  int    `json:"from_y" yaml:"from_y"`
	ToY    int    `json:"to_y" yaml:"to_y"`
	Extent int    `json:"extent" yaml:"extent"`
}

// Config bootstraps a world from YAML or JSON.
type Config struct {
	Name    string      `json:"name" yaml:"name"`
	Shards  int         `json:"shards,omitempty" yaml:"shards,omitempty"`
	Palette []BlockType `json:"palette" yaml:"palette"`
	Layers  []Layer     `json:"layers,omitempty" yaml:"layers,omitempty"`
}

// LoadConfig loads a world config from a YAML reader.
func LoadConfig(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("world: decode config: %w", err)
	}
	return &c, nil
}

// Validate checks the config for structural problems before building.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("world: config name is required")
	}
	if len(c.Palette) == 0 {
		return ErrEmptyPalette
	}

	names := make(map[string]struct{}, len(c.Palette))
	for _, bt := range c.Palette {
		names[bt.Name] = struct{}{}
	}
	for _, layer := range c.Layers {
		if _, ok := names[layer.Block]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBlock, layer.Block)
		}
		if layer.FromY > layer.ToY {
			return fmt.Errorf("world: layer %q: from_y %d above to_y %d", layer.Block, layer.FromY, layer.ToY)
		}
		if layer.Extent <= 0 {
			return fmt.Errorf("world: layer %q: extent must be positive", layer.Block)
		}
	}
	return nil
}

// Build validates the config and constructs the world, filling the
// configured layers.
func (c *Config) Build(lg log.Log) (*World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	palette, err := NewPalette(c.Palette)
	if err != nil {
		return nil, err
	}

	w := NewWorld(palette, c.Shards, lg)
	for _, layer := range c.Layers {
		id, _ := palette.Lookup(layer.Block)
		min := geometry.NewVector3f(0, float64(layer.FromY), 0)
		max := geometry.NewVector3f(float64(layer.Extent-1), float64(layer.ToY), float64(layer.Extent-1))
		written := w.FillBox(min, max, id)

		if lg != nil {
			lg.Debug("layer filled",
				log.String("world", c.Name),
				log.String("block", layer.Block),
				log.Int("blocks", written),
			)
		}
	}
	return w, nil
}
