package store

import (
	"fmt"
	"math/rand/v2"
)

// maxRandomAttempts bounds the random draws NewID makes before it falls
// back to scanning for a free id.
const maxRandomAttempts = 64

// Source draws uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultSource draws from the math/rand/v2 global generator.
var DefaultSource Source = globalSource{}

// NewID returns a random id in [0, limit) that is not in taken. A nil src
// uses DefaultSource.
func NewID(src Source, limit int, taken map[int]bool) (int, error) {
	if limit <= 0 {
		return 0, fmt.Errorf("invalid id limit %d", limit)
	}
	if src == nil {
		src = DefaultSource
	}

	used := 0
	for id := range taken {
		if id >= 0 && id < limit && taken[id] {
			used++
		}
	}
	if used >= limit {
		return 0, ErrIDSpaceExhausted
	}

	for range maxRandomAttempts {
		id := src.IntN(limit)
		if !taken[id] {
			return id, nil
		}
	}

	// Dense id space: walk forward from a random start to the next free id.
	start := src.IntN(limit)
	for i := 0; i < limit; i++ {
		id := (start + i) % limit
		if !taken[id] {
			return id, nil
		}
	}
	return 0, ErrIDSpaceExhausted
}
