package fixture

import (
	"errors"
	"fmt"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"

	"github.com/vktec/slimecheck"
	"github.com/vktec/slimecheck/cpu"
)

// Parameters of the reference random-sample fixture.
const (
	DefaultSampleSeed   = 73
	DefaultSampleRadius = 10000
	DefaultSampleCount  = 20
	DefaultMaxAttempts  = 1 << 24
)

// 2*radius must fit in an int32 bound.
const maxSampleRadius = 1<<30 - 1

var (
	ErrInvalidCount    = errors.New("invalid sample count")
	ErrSampleExhausted = errors.New("sample exhausted")
)

// Sampler draws random chunks from [-Radius, Radius) on both axes until it
// has Slimes distinct slime chunks, then keeps drawing from the same stream
// until it has NotSlimes distinct other chunks.
type Sampler struct {
	WorldSeed int64
	Formula   cpu.Formula
	Radius    int32

	Slimes, NotSlimes int

	// MaxAttempts caps the total number of draws. Zero means
	// DefaultMaxAttempts.
	MaxAttempts int

	Logger *zap.Logger
}

// Sample returns the lists "slimes" and "not_slimes". rng is advanced two
// NextInt calls per draw, x first.
func (s Sampler) Sample(rng *cpu.Random) ([]List, error) {
	if s.Radius <= 0 || s.Radius > maxSampleRadius {
		return nil, fmt.Errorf("%w %d: must be in [1, %d]", ErrInvalidRadius, s.Radius, maxSampleRadius)
	}
	if s.Slimes < 0 || s.NotSlimes < 0 {
		return nil, fmt.Errorf("%w: %d slimes, %d not slimes", ErrInvalidCount, s.Slimes, s.NotSlimes)
	}
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxAttempts := s.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	world := cpu.World(s.WorldSeed)
	attempts := 0
	collect := func(name string, want bool, need int) (List, error) {
		found := make([]slimecheck.ChunkPos, 0, need)
		seen := intmap.New[uint64, struct{}](max(need, 8))
		for len(found) < need {
			if attempts >= maxAttempts {
				return List{}, fmt.Errorf("%w after %d draws: found %d of %d %s",
					ErrSampleExhausted, attempts, len(found), need, name)
			}
			attempts++

			x := rng.NextInt(2*s.Radius) - s.Radius
			z := rng.NextInt(2*s.Radius) - s.Radius
			p := slimecheck.ChunkPos{X: x, Z: z}
			if world.CalcChunkWith(s.Formula, x, z) != want || seen.Has(p.Key()) {
				continue
			}
			seen.Put(p.Key(), struct{}{})
			found = append(found, p)
		}
		log.Debug("sample list complete",
			zap.String("list", name),
			zap.Int("chunks", len(found)),
			zap.Int("draws", attempts),
		)
		return List{Name: name, Chunks: found}, nil
	}

	slimes, err := collect("slimes", true, s.Slimes)
	if err != nil {
		return nil, err
	}
	notSlimes, err := collect("not_slimes", false, s.NotSlimes)
	if err != nil {
		return nil, err
	}
	return []List{slimes, notSlimes}, nil
}
