package cpu

import (
	"errors"
	"fmt"
)

type World int64

// Formula selects how the per-chunk seed is scrambled.
type Formula int

const (
	// JavaFormula matches the game: three of the products wrap at 32 bits.
	JavaFormula Formula = iota
	// WideFormula computes every product in 64 bits, as some C++ map
	// renderers do. It agrees with JavaFormula only while no product
	// overflows int32.
	WideFormula
)

var ErrUnknownFormula = errors.New("unknown formula")

func ParseFormula(name string) (Formula, error) {
	switch name {
	case "java", "":
		return JavaFormula, nil
	case "wide":
		return WideFormula, nil
	}
	return 0, fmt.Errorf("%w %q (valid options: java, wide)", ErrUnknownFormula, name)
}

func (f Formula) String() string {
	switch f {
	case JavaFormula:
		return "java"
	case WideFormula:
		return "wide"
	}
	return fmt.Sprintf("Formula(%d)", int(f))
}

const slimeSalt = 0x3ad8025f

// ScrambleSeed derives the seed of the chunk's generator. The xor applies
// to the whole sum, not just the last term.
func ScrambleSeed(worldSeed int64, x, z int32) int64 {
	seed := worldSeed +
		int64(x*x*0x4c1906) +
		int64(x*0x5ac0db) +
		int64(z*z)*0x4307a7 + // sic
		int64(z*0x5f24f)
	return seed ^ slimeSalt
}

func scrambleSeedWide(worldSeed int64, x_, z_ int32) int64 {
	x, z := int64(x_), int64(z_)
	seed := worldSeed +
		x*x*0x4c1906 +
		x*0x5ac0db +
		z*z*0x4307a7 +
		z*0x5f24f
	return seed ^ slimeSalt
}

// IsSlimeChunk reports whether chunk (x, z) is a slime chunk in a world
// with the given seed.
func IsSlimeChunk(worldSeed int64, x, z int32) bool {
	return World(worldSeed).CalcChunk(x, z)
}

func (w World) CalcChunk(x, z int32) bool {
	r := NewRandom(ScrambleSeed(int64(w), x, z))
	return r.NextInt(10) == 0
}

func (w World) CalcChunkWith(f Formula, x, z int32) bool {
	var seed int64
	switch f {
	case WideFormula:
		seed = scrambleSeedWide(int64(w), x, z)
	default:
		seed = ScrambleSeed(int64(w), x, z)
	}
	r := NewRandom(seed)
	return r.NextInt(10) == 0
}
