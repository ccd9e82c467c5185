// Package dice provides the six-sided die used by the engine.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

const Sides = 6

// Roller produces die faces in 1..Sides.
type Roller interface {
	Roll() int
}

type rngRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a uniform d6 driven by a seeded math/rand source.
// The same seed always yields the same sequence.
func New(seed int64) Roller {
	return &rngRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *rngRoller) Roll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(Sides) + 1
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

type scripted struct {
	mu     sync.Mutex
	values []int
	next   int
}

// Scripted returns the given faces in order, starting over after the last.
// It panics on an empty script or a face outside 1..Sides.
func Scripted(values ...int) Roller {
	if len(values) == 0 {
		panic("dice: empty script")
	}
	for _, v := range values {
		if v < 1 || v > Sides {
			panic(fmt.Sprintf("dice: face %d out of range", v))
		}
	}
	return &scripted{values: append([]int(nil), values...)}
}

func (s *scripted) Roll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}
