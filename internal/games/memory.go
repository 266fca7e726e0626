package games

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	MemoryRevealDelay = time.Second
	MemoryMatchPoints = 10
)

var memorySymbols = []string{"⭐", "🌙", "✨", "💖", "💝", "🎈", "🎨", "🎪"}

// Card is one cell of the memory board
type Card struct {
	Symbol  string
	FaceUp  bool
	Matched bool
}

// MemoryBoard holds two cards per symbol. At most two face-up unmatched
// cards (the pending pair) exist at any time.
type MemoryBoard struct {
	Cards []Card

	pending      []int
	resolveAt    time.Time
	matchedPairs int
}

// NewMemoryBoard deals a shuffled board
func NewMemoryBoard(rng *rand.Rand) *MemoryBoard {
	cards := make([]Card, 0, 2*len(memorySymbols))
	for _, symbol := range memorySymbols {
		cards = append(cards, Card{Symbol: symbol}, Card{Symbol: symbol})
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &MemoryBoard{Cards: cards}
}

// Flip turns a face-down card over. It reports false when the click is
// ignored: the card is already showing, or a pair is waiting to resolve.
func (b *MemoryBoard) Flip(i int, now time.Time) (bool, error) {
	if i < 0 || i >= len(b.Cards) {
		return false, fmt.Errorf("%w: card %d", ErrInvalidAction, i)
	}
	if len(b.pending) >= 2 {
		return false, nil
	}
	card := &b.Cards[i]
	if card.FaceUp || card.Matched {
		return false, nil
	}

	card.FaceUp = true
	b.pending = append(b.pending, i)
	if len(b.pending) == 2 {
		b.resolveAt = now.Add(MemoryRevealDelay)
	}
	return true, nil
}

// Resolve compares the pending pair once its reveal delay has passed
func (b *MemoryBoard) Resolve(now time.Time) (int, *Notice) {
	if len(b.pending) < 2 || now.Before(b.resolveAt) {
		return 0, nil
	}

	first, second := &b.Cards[b.pending[0]], &b.Cards[b.pending[1]]
	b.pending = nil

	if first.Symbol != second.Symbol {
		first.FaceUp = false
		second.FaceUp = false
		return 0, nil
	}

	first.Matched = true
	second.Matched = true
	b.matchedPairs++
	if b.Complete() {
		return MemoryMatchPoints, &Notice{Success: true, Message: "🎉 Congratulations! You completed the memory game!"}
	}
	return MemoryMatchPoints, nil
}

// Pending reports whether a pair is waiting to be compared
func (b *MemoryBoard) Pending() bool {
	return len(b.pending) == 2
}

// MatchedPairs returns how many pairs have been found
func (b *MemoryBoard) MatchedPairs() int {
	return b.matchedPairs
}

// Complete reports whether every pair is matched
func (b *MemoryBoard) Complete() bool {
	return b.matchedPairs == len(b.Cards)/2
}

// Deadline returns when the pending pair resolves
func (b *MemoryBoard) Deadline() (time.Time, bool) {
	if !b.Pending() {
		return time.Time{}, false
	}
	return b.resolveAt, true
}
