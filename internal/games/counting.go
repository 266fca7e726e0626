package games

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	CountingPoints          = 20
	CountingRegenerateDelay = 2 * time.Second
)

// RoundOutcome is the state of a counting round
type RoundOutcome int

const (
	RoundOpen RoundOutcome = iota
	RoundWon
	RoundLost
)

// CountingRound asks the player to click exactly Target stars
type CountingRound struct {
	Target  int
	Stars   []bool
	Clicked int
	Outcome RoundOutcome

	regenerateAt time.Time
}

// NewCountingRound picks a target in [1,10] and a pool of Target+[2,6] stars
func NewCountingRound(rng *rand.Rand) *CountingRound {
	target := rng.Intn(10) + 1
	total := target + rng.Intn(5) + 2
	return &CountingRound{
		Target: target,
		Stars:  make([]bool, total),
	}
}

// Click marks a star. Stars count once; there is no undo. Reaching the target
// wins, going past it afterwards loses, and either way a new round follows.
func (r *CountingRound) Click(i int, now time.Time) (int, *Notice, error) {
	if i < 0 || i >= len(r.Stars) {
		return 0, nil, fmt.Errorf("%w: star %d", ErrInvalidAction, i)
	}
	if r.Outcome == RoundLost || r.Stars[i] {
		return 0, nil, nil
	}

	r.Stars[i] = true
	r.Clicked++

	switch {
	case r.Clicked == r.Target:
		r.Outcome = RoundWon
		r.regenerateAt = now.Add(CountingRegenerateDelay)
		return CountingPoints, &Notice{Success: true, Message: "🌟 Perfect! You counted exactly right!"}, nil
	case r.Clicked > r.Target:
		r.Outcome = RoundLost
		if r.regenerateAt.IsZero() {
			r.regenerateAt = now.Add(CountingRegenerateDelay)
		}
		return 0, &Notice{Success: false, Message: "Oops! You clicked too many stars. Try again!"}, nil
	}
	return 0, nil, nil
}

// Due reports whether the round has finished and its replacement is due
func (r *CountingRound) Due(now time.Time) bool {
	return r.Outcome != RoundOpen && !now.Before(r.regenerateAt)
}

// Deadline returns when the next round is generated
func (r *CountingRound) Deadline() (time.Time, bool) {
	if r.Outcome == RoundOpen {
		return time.Time{}, false
	}
	return r.regenerateAt, true
}
