package slimecheck

import "context"

// Scanner finds every slime chunk in a window. Results are ordered with
// ChunkPos.OrderBefore.
type Scanner interface {
	Scan(ctx context.Context, w Window, worldSeed int64) ([]ChunkPos, error)
}
