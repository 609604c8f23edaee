package world

import (
	"sync"

	"github.com/voxelcast/voxelcast/internal/core/observability/log"
	"github.com/voxelcast/voxelcast/pkg/collision"
	"github.com/voxelcast/voxelcast/pkg/concurrent"
	"github.com/voxelcast/voxelcast/pkg/geometry"
)

const defaultShardCount = 16

// World is a sparse, chunked voxel grid. Chunks are spread over a fixed set
// of shards selected by xxhash of the chunk position, each shard guarded by
// its own RWMutex, so reads from concurrent raycasts do not serialize on a
// single lock.
type World struct {
	shards  []worldShard
	count   int
	palette *Palette
	lg      log.Log
}

type worldShard struct {
	mu     sync.RWMutex
	chunks map[ChunkPos]*chunk
}

// NewWorld creates an empty world using the given palette for solidity
// lookups. A shardCount below one falls back to the default.
func NewWorld(palette *Palette, shardCount int, lg log.Log) *World {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}

	w := &World{
		shards:  make([]worldShard, shardCount),
		count:   shardCount,
		palette: palette,
		lg:      lg,
	}
	for i := range w.shards {
		w.shards[i].chunks = make(map[ChunkPos]*chunk)
	}
	return w
}

func (w *World) shardFor(pos ChunkPos) *worldShard {
	return &w.shards[pos.hash()%uint64(w.count)]
}

// BlockAt returns the block at the given block coordinate. Unset blocks
// read as Air.
func (w *World) BlockAt(x, y, z int) BlockID {
	pos, idx := split(x, y, z)
	s := w.shardFor(pos)

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chunks[pos]
	if !ok {
		return Air
	}
	return c.get(idx)
}

// SetBlock writes the block at the given block coordinate, creating the
// owning chunk if needed.
func (w *World) SetBlock(x, y, z int, id BlockID) {
	pos, idx := split(x, y, z)
	s := w.shardFor(pos)

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chunks[pos]
	if !ok {
		c = &chunk{}
		s.chunks[pos] = c
	}
	c.set(idx, id)
}

// FillBox sets every block whose coordinate lies in the floored, inclusive
// range [min, max] and returns the number of blocks written.
func (w *World) FillBox(min, max geometry.Vector3f, id BlockID) int {
	lo := min.Floor()
	hi := max.Floor()

	written := 0
	for x := int(lo.X); x <= int(hi.X); x++ {
		for y := int(lo.Y); y <= int(hi.Y); y++ {
			for z := int(lo.Z); z <= int(hi.Z); z++ {
				w.SetBlock(x, y, z, id)
				written++
			}
		}
	}
	return written
}

// Solid reports whether the block containing v is solid according to the
// palette.
func (w *World) Solid(v geometry.Vector3f) bool {
	b := v.Floor()
	return w.palette.Solid(w.BlockAt(int(b.X), int(b.Y), int(b.Z)))
}

// SolidPredicate adapts the world into a traversal predicate: the
// traversal stops at the first solid block.
func (w *World) SolidPredicate() collision.BlockPredicate {
	return func(block geometry.Vector3f) bool {
		return w.Solid(block)
	}
}

// BlockHit is the outcome of a world raycast: the solid block the ray
// stopped at and the face crossing of its unit cube.
type BlockHit struct {
	Block geometry.Vector3f   `json:"block"`
	Face  collision.HitResult `json:"face"`
}

// Raycast walks the segment start->end through the grid and stops at the
// first solid block, then resolves which face of that block the segment
// crosses. When the segment starts inside a solid block there is no face to
// cross and the hit reports the block itself.
func (w *World) Raycast(start, end geometry.Vector3f) (BlockHit, bool) {
	var found geometry.Vector3f
	hit := false

	collision.TraverseBlocks(start, end, func(block geometry.Vector3f) bool {
		if w.Solid(block) {
			found = block
			hit = true
			return true
		}
		return false
	})

	if !hit {
		return BlockHit{}, false
	}

	box := collision.NewAABB(found, found.Add(geometry.NewVector3f(1, 1, 1)))
	face, ok := collision.Intercept(box, start, end)
	if !ok {
		face = collision.HitResult{Distance: found.SquareLength(), Position: found}
	}
	return BlockHit{Block: found, Face: face}, true
}

// Segment is one ray of a sweep.
type Segment struct {
	Start geometry.Vector3f `json:"start"`
	End   geometry.Vector3f `json:"end"`
}

// SweepResult pairs a swept segment with its hit, if any.
type SweepResult struct {
	Segment Segment   `json:"segment"`
	Hit     *BlockHit `json:"hit,omitempty"`
}

// Sweep raycasts a batch of segments concurrently on up to workers
// goroutines. Results keep the order of the input segments.
func (w *World) Sweep(segments []Segment, workers int) []SweepResult {
	results := make([]SweepResult, len(segments))

	_ = concurrent.ForEach(segments, workers, func(i int, s Segment) error {
		results[i].Segment = s
		if h, ok := w.Raycast(s.Start, s.End); ok {
			results[i].Hit = &h
		}
		return nil
	})

	if w.lg != nil {
		hits := 0
		for _, r := range results {
			if r.Hit != nil {
				hits++
			}
		}
		w.lg.Debug("sweep complete", log.Int("rays", len(segments)), log.Int("hits", hits))
	}

	return results
}
