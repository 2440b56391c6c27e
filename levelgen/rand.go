package levelgen

import (
	"math/bits"
	"math/rand/v2"
)

// pcgStream is xored into the seed to form the second half of the PCG state.
const pcgStream = 0x9E3779B97F4A7C15

// Rand is the only random source generation uses. It wraps PCG-DXSM and
// defines every derived draw itself so that any implementation following the
// same recipe reproduces the same stream for a seed.
type Rand struct {
	src *rand.PCG
}

// NewRand seeds PCG-DXSM with (seed, seed^0x9E3779B97F4A7C15).
func NewRand(seed uint64) *Rand {
	return &Rand{src: rand.NewPCG(seed, seed^pcgStream)}
}

func (r *Rand) Uint64() uint64 {
	return r.src.Uint64()
}

// Float64 returns a value in [0,1) built from the top 53 bits of one draw.
func (r *Rand) Float64() float64 {
	return float64(r.Uint64()>>11) * 0x1p-53
}

// IntN returns a value in [0,n) as floor(x*n / 2^64). n must be positive.
func (r *Rand) IntN(n int) int {
	if n <= 0 {
		panic("levelgen: IntN called with non-positive n")
	}
	hi, _ := bits.Mul64(r.Uint64(), uint64(n))
	return int(hi)
}

// IntRange returns a value in [lo,hi], both inclusive.
func (r *Rand) IntRange(lo, hi int) int {
	if hi < lo {
		panic("levelgen: IntRange called with hi < lo")
	}
	return lo + r.IntN(hi-lo+1)
}

// FloatRange returns a value in [lo,hi).
func (r *Rand) FloatRange(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
