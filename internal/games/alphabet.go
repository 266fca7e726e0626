package games

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	AlphabetChoices      = 6
	AlphabetPoints       = 10
	AlphabetAdvanceDelay = time.Second
	AlphabetMarkDuration = time.Second
)

// AnimalLetter pairs a letter with the animal that starts with it
type AnimalLetter struct {
	Letter string
	Glyph  string
}

// AnimalAlphabet is played in order, A to Z
var AnimalAlphabet = []AnimalLetter{
	{"A", "🐊"}, {"B", "🐻"}, {"C", "🐱"}, {"D", "🐕"}, {"E", "🐘"},
	{"F", "🐸"}, {"G", "🦒"}, {"H", "🐴"}, {"I", "🦎"}, {"J", "🪼"},
	{"K", "🐨"}, {"L", "🦁"}, {"M", "🐒"}, {"N", "🐮"}, {"O", "🦉"},
	{"P", "🐧"}, {"Q", "🦆"}, {"R", "🐰"}, {"S", "🐍"}, {"T", "🐯"},
	{"U", "🦄"}, {"V", "🦇"}, {"W", "🐋"}, {"X", "🐟"}, {"Y", "🐃"},
	{"Z", "🦓"},
}

// AlphabetQuiz shows an animal and asks for its first letter
type AlphabetQuiz struct {
	Round          int
	Choices        []string
	CorrectAnswers int
	Answered       bool
	WrongPick      string
	Complete       bool

	advanceAt  time.Time
	wrongUntil time.Time
}

// NewAlphabetQuiz starts at the first letter
func NewAlphabetQuiz(rng *rand.Rand) *AlphabetQuiz {
	q := &AlphabetQuiz{}
	q.Choices = alphabetChoices(rng, AnimalAlphabet[0].Letter)
	return q
}

// alphabetChoices samples distinct letters, forcing the answer into slot 0
// when the sample missed it
func alphabetChoices(rng *rand.Rand, correct string) []string {
	perm := rng.Perm(len(AnimalAlphabet))[:AlphabetChoices]
	choices := make([]string, 0, AlphabetChoices)
	found := false
	for _, i := range perm {
		letter := AnimalAlphabet[i].Letter
		if letter == correct {
			found = true
		}
		choices = append(choices, letter)
	}
	if !found {
		choices[0] = correct
	}
	return choices
}

// Current returns the letter being asked for
func (q *AlphabetQuiz) Current() AnimalLetter {
	if q.Round >= len(AnimalAlphabet) {
		return AnimalAlphabet[len(AnimalAlphabet)-1]
	}
	return AnimalAlphabet[q.Round]
}

// Choose answers the current round. Picks are ignored while a correct answer
// is waiting to advance or once the quiz is complete.
func (q *AlphabetQuiz) Choose(letter string, now time.Time) (int, error) {
	if q.Complete || q.Answered {
		return 0, nil
	}
	if !q.offered(letter) {
		return 0, fmt.Errorf("%w: letter %q not offered", ErrInvalidAction, letter)
	}

	if letter == q.Current().Letter {
		q.Answered = true
		q.WrongPick = ""
		q.CorrectAnswers++
		q.advanceAt = now.Add(AlphabetAdvanceDelay)
		return AlphabetPoints, nil
	}

	q.WrongPick = letter
	q.wrongUntil = now.Add(AlphabetMarkDuration)
	return 0, nil
}

func (q *AlphabetQuiz) offered(letter string) bool {
	for _, c := range q.Choices {
		if c == letter {
			return true
		}
	}
	return false
}

// Tick clears an expired error mark and moves to the next round when due
func (q *AlphabetQuiz) Tick(now time.Time, rng *rand.Rand) *Notice {
	if q.WrongPick != "" && !now.Before(q.wrongUntil) {
		q.WrongPick = ""
	}
	if !q.Answered || now.Before(q.advanceAt) {
		return nil
	}

	q.Answered = false
	q.Round++
	if q.Round >= len(AnimalAlphabet) {
		q.Complete = true
		return &Notice{Success: true, Message: "🎉 Great job! You completed the alphabet game!"}
	}
	q.Choices = alphabetChoices(rng, AnimalAlphabet[q.Round].Letter)
	return nil
}

// Deadline returns when the next advance or mark expiry happens
func (q *AlphabetQuiz) Deadline() (time.Time, bool) {
	return earliest(q.advanceAt, q.Answered, q.wrongUntil, q.WrongPick != "")
}
