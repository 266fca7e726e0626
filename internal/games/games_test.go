package games

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func newTestSession(t *testing.T, kind Kind) *Session {
	t.Helper()
	s, err := NewSession(kind, newRNG(42), t0)
	require.NoError(t, err)
	return s
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"memory", Memory, false},
		{"counting", Counting, false},
		{"colors", Colors, false},
		{"alphabet", Alphabet, false},
		{"chess", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownGame)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindTitles(t *testing.T) {
	assert.Equal(t, "Memory Match", Memory.Title())
	assert.Equal(t, "Count the Stars", Counting.Title())
	assert.Equal(t, "Color Mixer", Colors.Title())
	assert.Equal(t, "ABC Adventure", Alphabet.Title())
}

func TestNewSessionRejectsUnknownKind(t *testing.T) {
	_, err := NewSession("chess", newRNG(1), t0)
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestNewSessionStartsAtZero(t *testing.T) {
	for _, k := range Kinds {
		s := newTestSession(t, k)
		assert.Equal(t, 0, s.Score, k)
		_, pending := s.NextDeadline()
		assert.False(t, pending, k)
	}
}

// Memory

func findPair(b *MemoryBoard, match bool) (int, int) {
	for i := range b.Cards {
		for j := i + 1; j < len(b.Cards); j++ {
			if b.Cards[i].Matched || b.Cards[j].Matched {
				continue
			}
			if (b.Cards[i].Symbol == b.Cards[j].Symbol) == match {
				return i, j
			}
		}
	}
	return -1, -1
}

func TestMemoryBoardHasEightPairs(t *testing.T) {
	b := NewMemoryBoard(newRNG(7))
	require.Len(t, b.Cards, 16)

	counts := map[string]int{}
	for _, c := range b.Cards {
		counts[c.Symbol]++
		assert.False(t, c.FaceUp)
		assert.False(t, c.Matched)
	}
	assert.Len(t, counts, 8)
	for symbol, n := range counts {
		assert.Equal(t, 2, n, symbol)
	}
}

func TestMemoryMismatchFlipsBack(t *testing.T) {
	s := newTestSession(t, Memory)
	i, j := findPair(s.Memory, false)

	_, err := s.Act(Action{Index: i}, t0)
	require.NoError(t, err)
	_, err = s.Act(Action{Index: j}, t0)
	require.NoError(t, err)
	require.True(t, s.Memory.Pending())

	deadline, ok := s.NextDeadline()
	require.True(t, ok)
	assert.Equal(t, t0.Add(MemoryRevealDelay), deadline)

	s.Tick(t0.Add(999 * time.Millisecond))
	assert.True(t, s.Memory.Cards[i].FaceUp, "pair stays visible until the delay passes")

	s.Tick(t0.Add(MemoryRevealDelay))
	assert.False(t, s.Memory.Cards[i].FaceUp)
	assert.False(t, s.Memory.Cards[j].FaceUp)
	assert.False(t, s.Memory.Pending())
	assert.Equal(t, 0, s.Score)
}

func TestMemoryClicksIgnoredWhilePending(t *testing.T) {
	s := newTestSession(t, Memory)
	i, j := findPair(s.Memory, false)

	s.Act(Action{Index: i}, t0)
	s.Act(Action{Index: j}, t0)

	third := -1
	for k := range s.Memory.Cards {
		if k != i && k != j {
			third = k
			break
		}
	}
	flipped, err := s.Memory.Flip(third, t0)
	require.NoError(t, err)
	assert.False(t, flipped)
	assert.False(t, s.Memory.Cards[third].FaceUp)

	faceUp := 0
	for _, c := range s.Memory.Cards {
		if c.FaceUp && !c.Matched {
			faceUp++
		}
	}
	assert.Equal(t, 2, faceUp)
}

func TestMemoryFlipSameCardTwiceIgnored(t *testing.T) {
	b := NewMemoryBoard(newRNG(3))

	flipped, err := b.Flip(0, t0)
	require.NoError(t, err)
	assert.True(t, flipped)

	flipped, err = b.Flip(0, t0)
	require.NoError(t, err)
	assert.False(t, flipped)
	assert.False(t, b.Pending())
}

func TestMemoryMatchScores(t *testing.T) {
	s := newTestSession(t, Memory)
	i, j := findPair(s.Memory, true)

	s.Act(Action{Index: i}, t0)
	s.Act(Action{Index: j}, t0)
	notices := s.Tick(t0.Add(MemoryRevealDelay))

	assert.Empty(t, notices)
	assert.Equal(t, MemoryMatchPoints, s.Score)
	assert.True(t, s.Memory.Cards[i].Matched)
	assert.True(t, s.Memory.Cards[j].Matched)
	assert.Equal(t, 1, s.Memory.MatchedPairs())

	flipped, err := s.Memory.Flip(i, t0.Add(2*time.Second))
	require.NoError(t, err)
	assert.False(t, flipped, "matched cards cannot be flipped again")
}

func TestMemoryCompletion(t *testing.T) {
	s := newTestSession(t, Memory)
	now := t0

	var last []Notice
	for pair := 0; pair < 8; pair++ {
		i, j := findPair(s.Memory, true)
		require.GreaterOrEqual(t, i, 0)
		s.Act(Action{Index: i}, now)
		s.Act(Action{Index: j}, now)
		now = now.Add(MemoryRevealDelay)
		last = s.Tick(now)
	}

	assert.True(t, s.Memory.Complete())
	assert.Equal(t, 8*MemoryMatchPoints, s.Score)
	require.Len(t, last, 1)
	assert.True(t, last[0].Success)
	assert.Contains(t, last[0].Message, "completed the memory game")
}

func TestMemoryRejectsOutOfRange(t *testing.T) {
	s := newTestSession(t, Memory)
	_, err := s.Act(Action{Index: 16}, t0)
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = s.Act(Action{Index: -1}, t0)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

// Counting

func TestCountingRoundBounds(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		r := NewCountingRound(newRNG(seed))
		assert.GreaterOrEqual(t, r.Target, 1)
		assert.LessOrEqual(t, r.Target, 10)
		extra := len(r.Stars) - r.Target
		assert.GreaterOrEqual(t, extra, 2)
		assert.LessOrEqual(t, extra, 6)
	}
}

func TestCountingExactTargetScores(t *testing.T) {
	s := newTestSession(t, Counting)
	target := s.Counting.Target

	for i := 0; i < target-1; i++ {
		notices, err := s.Act(Action{Index: i}, t0)
		require.NoError(t, err)
		assert.Empty(t, notices)
	}
	assert.Equal(t, 0, s.Score, "no partial credit")

	notices, err := s.Act(Action{Index: target - 1}, t0)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.True(t, notices[0].Success)
	assert.Equal(t, CountingPoints, s.Score)
	assert.Equal(t, RoundWon, s.Counting.Outcome)
}

func TestCountingStarClickIsIdempotent(t *testing.T) {
	s := newTestSession(t, Counting)

	s.Act(Action{Index: 0}, t0)
	s.Act(Action{Index: 0}, t0)

	assert.Equal(t, 1, s.Counting.Clicked)
}

func TestCountingOverclickFails(t *testing.T) {
	s := newTestSession(t, Counting)
	target := s.Counting.Target

	for i := 0; i < target; i++ {
		s.Act(Action{Index: i}, t0)
	}
	notices, err := s.Act(Action{Index: target}, t0.Add(500*time.Millisecond))
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.False(t, notices[0].Success)
	assert.Equal(t, RoundLost, s.Counting.Outcome)
	assert.Equal(t, CountingPoints, s.Score, "score never goes down")

	// frozen
	s.Act(Action{Index: target + 1}, t0.Add(600*time.Millisecond))
	assert.Equal(t, target+1, s.Counting.Clicked)

	deadline, ok := s.NextDeadline()
	require.True(t, ok)
	assert.Equal(t, t0.Add(CountingRegenerateDelay), deadline)
}

func TestCountingRegeneratesAfterDelay(t *testing.T) {
	s := newTestSession(t, Counting)
	old := s.Counting
	for i := 0; i < old.Target; i++ {
		s.Act(Action{Index: i}, t0)
	}

	s.Tick(t0.Add(CountingRegenerateDelay - time.Millisecond))
	assert.Same(t, old, s.Counting)

	s.Tick(t0.Add(CountingRegenerateDelay))
	assert.NotSame(t, old, s.Counting)
	assert.Equal(t, RoundOpen, s.Counting.Outcome)
	assert.Equal(t, 0, s.Counting.Clicked)
	assert.Equal(t, CountingPoints, s.Score)
}

func TestCountingRejectsOutOfRange(t *testing.T) {
	s := newTestSession(t, Counting)
	_, err := s.Act(Action{Index: len(s.Counting.Stars)}, t0)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

// Colors

func TestMixIsOrderIndependent(t *testing.T) {
	tests := []struct {
		a, b Color
		want MixResult
	}{
		{Red, Yellow, MixResult{Name: "Orange!", Hex: "#FFA500"}},
		{Blue, Yellow, MixResult{Name: "Green!", Hex: "#32CD32"}},
		{Red, Blue, MixResult{Name: "Purple!", Hex: "#9370DB"}},
	}

	for _, tt := range tests {
		t.Run(tt.want.Name, func(t *testing.T) {
			ab, ok := Mix(tt.a, tt.b)
			require.True(t, ok)
			ba, ok := Mix(tt.b, tt.a)
			require.True(t, ok)
			assert.Equal(t, tt.want, ab)
			assert.Equal(t, ab, ba)
		})
	}
}

func TestColorMixerFlow(t *testing.T) {
	s := newTestSession(t, Colors)
	assert.Equal(t, EmptyMix, s.Colors.Result)

	_, err := s.Act(Action{Value: "red"}, t0)
	require.NoError(t, err)
	s.Act(Action{Value: "red"}, t0)
	assert.Equal(t, []Color{Red}, s.Colors.Selected, "repeat pick ignored")

	s.Act(Action{Value: "yellow"}, t0)
	assert.Equal(t, "Orange!", s.Colors.Result.Name)
	assert.Equal(t, ColorMixPoints, s.Score)

	s.Act(Action{Value: "blue"}, t0.Add(time.Second))
	assert.Len(t, s.Colors.Selected, 2, "third pick ignored")
	assert.Equal(t, ColorMixPoints, s.Score)

	s.Tick(t0.Add(ColorResetDelay))
	assert.Empty(t, s.Colors.Selected)
	assert.Equal(t, "Orange!", s.Colors.Result.Name, "result stays on display")

	s.Act(Action{Value: "blue"}, t0.Add(3*time.Second))
	s.Act(Action{Value: "red"}, t0.Add(3*time.Second))
	assert.Equal(t, "Purple!", s.Colors.Result.Name)
	assert.Equal(t, 2*ColorMixPoints, s.Score)
}

func TestColorMixerRejectsUnknownColor(t *testing.T) {
	s := newTestSession(t, Colors)
	_, err := s.Act(Action{Value: "green"}, t0)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

// Alphabet

func TestAlphabetTableIsOrdered(t *testing.T) {
	require.Len(t, AnimalAlphabet, 26)
	for i, entry := range AnimalAlphabet {
		assert.Equal(t, string(rune('A'+i)), entry.Letter)
		assert.NotEmpty(t, entry.Glyph)
	}
}

func TestAlphabetChoicesContainAnswer(t *testing.T) {
	rng := newRNG(11)
	for _, entry := range AnimalAlphabet {
		for n := 0; n < 20; n++ {
			choices := alphabetChoices(rng, entry.Letter)
			require.Len(t, choices, AlphabetChoices)
			assert.Contains(t, choices, entry.Letter)

			seen := map[string]bool{}
			for _, c := range choices {
				assert.False(t, seen[c], "duplicate choice %s", c)
				seen[c] = true
			}
		}
	}
}

func wrongChoice(q *AlphabetQuiz) string {
	for _, c := range q.Choices {
		if c != q.Current().Letter {
			return c
		}
	}
	return ""
}

func TestAlphabetWrongPickIsMarked(t *testing.T) {
	s := newTestSession(t, Alphabet)
	wrong := wrongChoice(s.Alphabet)

	_, err := s.Act(Action{Value: wrong}, t0)
	require.NoError(t, err)
	assert.Equal(t, wrong, s.Alphabet.WrongPick)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 0, s.Alphabet.Round)

	s.Tick(t0.Add(AlphabetMarkDuration))
	assert.Empty(t, s.Alphabet.WrongPick)
	assert.Equal(t, 0, s.Alphabet.Round)
}

func TestAlphabetCorrectPickAdvances(t *testing.T) {
	s := newTestSession(t, Alphabet)

	s.Act(Action{Value: "A"}, t0)
	assert.Equal(t, AlphabetPoints, s.Score)
	assert.True(t, s.Alphabet.Answered)

	s.Act(Action{Value: "A"}, t0.Add(500*time.Millisecond))
	assert.Equal(t, AlphabetPoints, s.Score, "picks ignored while advancing")

	s.Tick(t0.Add(AlphabetAdvanceDelay))
	assert.Equal(t, 1, s.Alphabet.Round)
	assert.Equal(t, "B", s.Alphabet.Current().Letter)
	assert.Contains(t, s.Alphabet.Choices, "B")
}

func TestAlphabetRejectsLetterNotOffered(t *testing.T) {
	s := newTestSession(t, Alphabet)

	offered := map[string]bool{}
	for _, c := range s.Alphabet.Choices {
		offered[c] = true
	}
	for _, entry := range AnimalAlphabet {
		if !offered[entry.Letter] {
			_, err := s.Act(Action{Value: entry.Letter}, t0)
			assert.ErrorIs(t, err, ErrInvalidAction)
			return
		}
	}
}

func TestAlphabetCompletion(t *testing.T) {
	s := newTestSession(t, Alphabet)
	now := t0

	var last []Notice
	for round := 0; round < 26; round++ {
		_, err := s.Act(Action{Value: s.Alphabet.Current().Letter}, now)
		require.NoError(t, err)
		now = now.Add(AlphabetAdvanceDelay)
		last = s.Tick(now)
	}

	assert.True(t, s.Alphabet.Complete)
	assert.Equal(t, 26, s.Alphabet.CorrectAnswers)
	assert.Equal(t, 26*AlphabetPoints, s.Score)
	require.Len(t, last, 1)
	assert.Contains(t, last[0].Message, "completed the alphabet game")
}
