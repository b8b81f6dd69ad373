// Go implementation of the java.util.Random LCG
// Not safe for concurrent use
package cpu

type Random struct {
	seed int64
}

const (
	magic    = 0x5DEECE66D
	addend   = 0xB
	seedMask = (1 << 48) - 1
)

func NewRandom(seed int64) Random {
	return Random{mixSeed(seed)}
}

func mixSeed(seed int64) int64 {
	return (seed ^ magic) & seedMask
}

func (r *Random) SetSeed(seed int64) {
	r.seed = mixSeed(seed)
}

// Next advances the generator and returns its top bits (1 <= bits <= 32).
func (r *Random) Next(bits int) int32 {
	r.seed = (r.seed*magic + addend) & seedMask
	return int32(r.seed >> (48 - bits))
}

// NextInt returns a value in [0, n). It panics if n is not positive.
func (r *Random) NextInt(n int32) int32 {
	if n <= 0 {
		panic("bound must be positive")
	}
	if n&-n == n {
		return int32((int64(n) * int64(r.Next(31))) >> 31)
	}

	// bits-val+(n-1) wraps negative for the incomplete top bucket
	var bits, val int32
	for {
		bits = r.Next(31)
		val = bits % n
		if bits-val+(n-1) >= 0 {
			return val
		}
	}
}
