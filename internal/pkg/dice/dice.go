// Package dice provides the randomness abstraction for initiative rolls.
//
// The engine never reaches for a global random source; callers inject a
// Roller so tests and replays stay deterministic.
package dice

import (
	"math/rand"
	"sync"
	"time"
)

// Roller produces d20 initiative rolls.
type Roller interface {
	// D20 returns a uniformly distributed int in [1, 20].
	D20() int
}

type rngRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller returns a Roller seeded with the given value. The same seed
// yields the same roll sequence.
func NewRoller(seed int64) Roller {
	return &rngRoller{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomRoller returns a time-seeded Roller for production use.
func NewRandomRoller() Roller {
	return NewRoller(time.Now().UnixNano())
}

func (r *rngRoller) D20() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(20) + 1
}

// Scripted is a Roller that replays a fixed sequence of values, cycling when
// exhausted. For tests.
type Scripted struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewScripted returns a Scripted roller over the given values. Values should
// be in [1, 20]; the roller does not check.
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: values}
}

// D20 returns the next scripted value
func (s *Scripted) D20() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 10
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
