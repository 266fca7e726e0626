// Package games implements the four mini-games. Each game is a small state
// machine; delayed effects (card reveal, round regeneration and the like) are
// stored as deadlines and fired by Tick, so discarding a Session discards its
// pending timers with it.
package games

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	ErrUnknownGame   = errors.New("unknown game")
	ErrInvalidAction = errors.New("invalid game action")
)

// Kind names one of the mini-games
type Kind string

const (
	Memory   Kind = "memory"
	Counting Kind = "counting"
	Colors   Kind = "colors"
	Alphabet Kind = "alphabet"
)

// Kinds lists the games in display order
var Kinds = []Kind{Memory, Counting, Colors, Alphabet}

// Title returns the name shown in the game modal
func (k Kind) Title() string {
	switch k {
	case Memory:
		return "Memory Match"
	case Counting:
		return "Count the Stars"
	case Colors:
		return "Color Mixer"
	case Alphabet:
		return "ABC Adventure"
	default:
		return string(k)
	}
}

// ParseKind validates a game name
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGame, s)
}

// Notice is a message a game wants shown in the notification banner
type Notice struct {
	Success bool
	Message string
}

// Action is one click inside a game. Memory and counting use Index,
// colors and alphabet use Value.
type Action struct {
	Index int
	Value string
}

// Session is one play-through of a game. Score only grows.
type Session struct {
	Kind  Kind
	Score int

	Memory   *MemoryBoard
	Counting *CountingRound
	Colors   *ColorMixer
	Alphabet *AlphabetQuiz

	rng *rand.Rand
}

// NewSession starts a fresh game of the given kind with a zero score
func NewSession(kind Kind, rng *rand.Rand, now time.Time) (*Session, error) {
	s := &Session{Kind: kind, rng: rng}
	switch kind {
	case Memory:
		s.Memory = NewMemoryBoard(rng)
	case Counting:
		s.Counting = NewCountingRound(rng)
	case Colors:
		s.Colors = NewColorMixer()
	case Alphabet:
		s.Alphabet = NewAlphabetQuiz(rng)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, kind)
	}
	return s, nil
}

// Act applies a click. Timers that are already due fire first, so the click
// sees the state the player is looking at.
func (s *Session) Act(a Action, now time.Time) ([]Notice, error) {
	notices := s.Tick(now)

	var (
		points int
		notice *Notice
		err    error
	)
	switch s.Kind {
	case Memory:
		_, err = s.Memory.Flip(a.Index, now)
	case Counting:
		points, notice, err = s.Counting.Click(a.Index, now)
	case Colors:
		points, err = s.Colors.Select(Color(a.Value), now)
	case Alphabet:
		points, err = s.Alphabet.Choose(a.Value, now)
	}
	if err != nil {
		return notices, err
	}

	s.Score += points
	if notice != nil {
		notices = append(notices, *notice)
	}
	return notices, nil
}

// Tick fires every timer due at now
func (s *Session) Tick(now time.Time) []Notice {
	var notices []Notice
	switch s.Kind {
	case Memory:
		points, notice := s.Memory.Resolve(now)
		s.Score += points
		if notice != nil {
			notices = append(notices, *notice)
		}
	case Counting:
		if s.Counting.Due(now) {
			s.Counting = NewCountingRound(s.rng)
		}
	case Colors:
		s.Colors.Tick(now)
	case Alphabet:
		if notice := s.Alphabet.Tick(now, s.rng); notice != nil {
			notices = append(notices, *notice)
		}
	}
	return notices
}

// NextDeadline returns when the next timer fires, if one is pending
func (s *Session) NextDeadline() (time.Time, bool) {
	switch s.Kind {
	case Memory:
		return s.Memory.Deadline()
	case Counting:
		return s.Counting.Deadline()
	case Colors:
		return s.Colors.Deadline()
	case Alphabet:
		return s.Alphabet.Deadline()
	}
	return time.Time{}, false
}

// earliest picks the sooner of two optional deadlines
func earliest(a time.Time, aok bool, b time.Time, bok bool) (time.Time, bool) {
	switch {
	case aok && bok:
		if b.Before(a) {
			return b, true
		}
		return a, true
	case aok:
		return a, true
	case bok:
		return b, true
	}
	return time.Time{}, false
}
