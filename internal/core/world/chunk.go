package world

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// BlockID identifies a block type within a palette. Zero is always air.
type BlockID uint32

// Air is the implicit content of every block that was never set.
const Air BlockID = 0

// ChunkSize is the edge length of a cubic chunk, in blocks.
const ChunkSize = 16

const (
	chunkShift  = 4
	chunkMask   = ChunkSize - 1
	chunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// ChunkPos addresses a chunk in chunk coordinates (block coordinate
// divided by ChunkSize, floored).
type ChunkPos struct {
	X, Y, Z int32
}

// hash maps the chunk position onto a shard via xxhash of its packed
// little-endian encoding.
func (p ChunkPos) hash() uint64 {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(p.X))
	binary.LittleEndian.PutUint32(buf[4:], uint32(p.Y))
	binary.LittleEndian.PutUint32(buf[8:], uint32(p.Z))
	return xxhash.Sum64(buf[:])
}

// chunk is a dense cube of block IDs. Chunks are created on first write;
// a missing chunk reads as all air.
type chunk struct {
	blocks [chunkVolume]BlockID
}

func (c *chunk) get(idx int) BlockID {
	return c.blocks[idx]
}

func (c *chunk) set(idx int, id BlockID) {
	c.blocks[idx] = id
}

// split converts a block coordinate into the owning chunk position and the
// flat index of the block inside that chunk. The arithmetic shift floors
// negative coordinates toward the lower chunk.
func split(x, y, z int) (ChunkPos, int) {
	pos := ChunkPos{
		X: int32(x >> chunkShift),
		Y: int32(y >> chunkShift),
		Z: int32(z >> chunkShift),
	}

	lx := x & chunkMask
	ly := y & chunkMask
	lz := z & chunkMask

	return pos, (ly*ChunkSize+lz)*ChunkSize + lx
}
