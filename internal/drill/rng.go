package drill

import (
	cryptoRand "crypto/rand"
	"math/big"
	"math/rand/v2"
)

// RandomSource supplies the randomness used for shuffling players and operator trial order.
type RandomSource interface {
	IntN(n int) int // [0, n)
}

// crypto-backed default; falls back to math/rand/v2 if the system reader fails.
type cryptoSource struct{}

func (cryptoSource) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return rand.IntN(n)
	}
	return int(v.Int64())
}

// DefaultSource returns the unseeded source used in production.
func DefaultSource() RandomSource { return cryptoSource{} }

// Replicable source for tests and replay.
type seededSource struct{ r *rand.Rand }

// NewSeededSource returns a deterministic source for the given seed.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	return s.r.IntN(n)
}

// shuffle performs an in-place Fisher-Yates shuffle driven by rng.
func shuffle[T any](rng RandomSource, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
