package fixture

import (
	"context"
	"errors"
	"fmt"

	"github.com/vktec/slimecheck"
)

// Parameters of the reference range-scan fixture.
const (
	DefaultScanSeed   = 42
	DefaultScanRadius = 10
)

var ErrInvalidRadius = errors.New("invalid radius")

// RangeScan lists the slime chunks in [-radius, radius] on both axes.
func RangeScan(ctx context.Context, s slimecheck.Scanner, worldSeed int64, radius int32) (List, error) {
	if radius < 0 {
		return List{}, fmt.Errorf("%w %d: must not be negative", ErrInvalidRadius, radius)
	}
	win := slimecheck.Square(radius)
	found, err := s.Scan(ctx, win, worldSeed)
	if err != nil {
		return List{}, fmt.Errorf("scanning %v: %w", win, err)
	}
	return List{Name: "slimes", Chunks: found}, nil
}
