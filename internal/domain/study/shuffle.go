package study

import (
	"math/rand/v2"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// Rand is the source of randomness for shuffling.
// IntN returns a uniform value in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// defaultRand draws from the process-wide math/rand/v2 source.
type defaultRand struct{}

func (defaultRand) IntN(n int) int {
	return rand.IntN(n)
}

// shuffle performs an in-place Fisher–Yates shuffle, so every permutation
// is equally likely given a uniform rng.
func shuffle(cards []domain.Card, rng Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
