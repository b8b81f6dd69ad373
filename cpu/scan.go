package cpu

import (
	"context"
	"runtime"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vktec/slimecheck"
	"github.com/vktec/slimecheck/util"
)

const SectionSize = 128

type Scanner struct {
	workerCount int
	formula     Formula
	log         *zap.Logger
}

var _ slimecheck.Scanner = (*Scanner)(nil)

type ScannerOption func(*Scanner)

// WithWorkers sets the number of sections computed at once. Values <= 0
// mean runtime.GOMAXPROCS(0).
func WithWorkers(n int) ScannerOption {
	return func(s *Scanner) { s.workerCount = n }
}

func WithFormula(f Formula) ScannerOption {
	return func(s *Scanner) { s.formula = f }
}

func WithLogger(l *zap.Logger) ScannerOption {
	return func(s *Scanner) {
		if l != nil {
			s.log = l
		}
	}
}

func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scanner) workers() int {
	if s.workerCount <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return s.workerCount
}

func (s *Scanner) Scan(ctx context.Context, win slimecheck.Window, worldSeed int64) ([]slimecheck.ChunkPos, error) {
	resultCh := make(chan []slimecheck.ChunkPos, 8)
	var err error
	go func() {
		err = s.run(ctx, win, World(worldSeed), func(ctx context.Context, sec *Section) error {
			found := sec.Slimes()
			if len(found) == 0 {
				return nil
			}
			select {
			case resultCh <- found:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		close(resultCh)
	}()

	var results []slimecheck.ChunkPos
	for found := range resultCh {
		results = append(results, found...)
	}
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b slimecheck.ChunkPos) int {
		switch {
		case a.OrderBefore(b):
			return -1
		case b.OrderBefore(a):
			return 1
		}
		return 0
	})
	s.log.Debug("scan finished", zap.Stringer("window", win), zap.Int("slimes", len(results)))
	return results, nil
}

// run computes every section of the window on the worker pool and hands
// each one to visit. visit is called concurrently.
func (s *Scanner) run(ctx context.Context, win slimecheck.Window, world World, visit func(context.Context, *Section) error) error {
	win = win.Normalize()
	workerCount := s.workers()
	s.log.Debug("scan started",
		zap.Stringer("window", win),
		zap.Int64("chunks", win.Area()),
		zap.Int("workers", workerCount),
		zap.Stringer("formula", s.formula),
	)

	g, ctx := errgroup.WithContext(ctx)
	sectionCh := make(chan *Section, 8)
	g.Go(func() error {
		defer close(sectionCh)
		return sendSections(ctx, win, sectionCh)
	})

	for i := 0; i < workerCount; i++ {
		g.Go(func() error {
			for sec := range sectionCh {
				if err := ctx.Err(); err != nil {
					return err
				}
				sec.Compute(world, s.formula)
				if err := visit(ctx, sec); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func sendSections(ctx context.Context, win slimecheck.Window, sectionCh chan<- *Section) error {
	x1, z1 := int64(win.X1), int64(win.Z1)
	for x := int64(win.X0); x <= x1; x += SectionSize {
		for z := int64(win.Z0); z <= z1; z += SectionSize {
			sec := &Section{
				X: int32(x),
				Z: int32(z),
				W: int32(min(SectionSize, x1-x+1)),
				H: int32(min(SectionSize, z1-z+1)),
			}
			select {
			case sectionCh <- sec:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// Section is a block of at most SectionSize x SectionSize chunks whose
// minimum corner is (X, Z).
type Section struct {
	X, Z  int32
	W, H  int32
	Slime [SectionSize * SectionSize]bool
}

func (sec *Section) Compute(world World, f Formula) {
	for z := int32(0); z < sec.H; z++ {
		for x := int32(0); x < sec.W; x++ {
			sec.Set(x, z, world.CalcChunkWith(f, sec.X+x, sec.Z+z))
		}
	}
}

// Slimes lists the section's slime chunks in scan order.
func (sec *Section) Slimes() (found []slimecheck.ChunkPos) {
	for x := int32(0); x < sec.W; x++ {
		for z := int32(0); z < sec.H; z++ {
			if sec.Get(x, z) {
				found = append(found, slimecheck.ChunkPos{X: sec.X + x, Z: sec.Z + z})
			}
		}
	}
	return found
}

func secIdx(x, z int32) int {
	util.Assert(0 <= x && x < SectionSize, "x out of range")
	util.Assert(0 <= z && z < SectionSize, "z out of range")
	return int(SectionSize*z + x)
}

func (sec *Section) Set(x, z int32, v bool) {
	sec.Slime[secIdx(x, z)] = v
}

func (sec *Section) Get(x, z int32) bool {
	return sec.Slime[secIdx(x, z)]
}
