package slimecheck

import "fmt"

type ChunkPos struct {
	X, Z int32
}

// OrderBefore orders by X, then Z; this is the order a nested x/z scan
// visits chunks in.
func (a ChunkPos) OrderBefore(b ChunkPos) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Z < b.Z
}

func (p ChunkPos) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Z)
}

// Key packs the position into a single integer, suitable as a map key.
func (p ChunkPos) Key() uint64 {
	return uint64(uint32(p.X))<<32 | uint64(uint32(p.Z))
}

func ChunkPosFromKey(k uint64) ChunkPos {
	return ChunkPos{int32(uint32(k >> 32)), int32(uint32(k))}
}
