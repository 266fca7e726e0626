package service

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"littlestars/internal/games"
	"littlestars/internal/notify"
	"littlestars/internal/story"
)

var ErrNoActiveGame = errors.New("no game is open")

// PlayService runs the story reader and the mini-games for a visitor and
// records progress as each operation completes
type PlayService struct {
	catalog  *story.Catalog
	progress *ProgressService
	now      func() time.Time
	seed     func() int64
}

// NewPlayService creates a new play service
func NewPlayService(catalog *story.Catalog, progress *ProgressService, now func() time.Time) *PlayService {
	if now == nil {
		now = time.Now
	}
	return &PlayService{
		catalog:  catalog,
		progress: progress,
		now:      now,
		seed:     func() int64 { return time.Now().UnixNano() },
	}
}

// Catalog returns the story catalog
func (s *PlayService) Catalog() *story.Catalog {
	return s.catalog
}

// OpenStory opens a story at its first page and counts it as read
func (s *PlayService) OpenStory(v *Visitor, id string) error {
	if err := v.Reader.Open(s.catalog, id); err != nil {
		log.Printf("Warning: visitor %s asked for %v", v.ID, err)
		return err
	}
	if err := s.progress.RecordStory(v); err != nil {
		log.Printf("Failed to record story progress: %v", err)
	}
	return nil
}

func (s *PlayService) NextPage(v *Visitor) bool { return v.Reader.Next() }
func (s *PlayService) PrevPage(v *Visitor) bool { return v.Reader.Prev() }
func (s *PlayService) CloseStory(v *Visitor)    { v.Reader.Close() }

// OpenGame starts a fresh game. A game that is already running is closed
// first, which records it.
func (s *PlayService) OpenGame(v *Visitor, name string) (*games.Session, error) {
	kind, err := games.ParseKind(name)
	if err != nil {
		log.Printf("Warning: visitor %s asked for %v", v.ID, err)
		return nil, err
	}

	s.CloseGame(v)
	session, err := games.NewSession(kind, rand.New(rand.NewSource(s.seed())), s.now())
	if err != nil {
		return nil, err
	}
	v.Game = session
	return session, nil
}

// GameAction applies a click to the running game
func (s *PlayService) GameAction(v *Visitor, action games.Action) error {
	if v.Game == nil {
		return ErrNoActiveGame
	}
	notices, err := v.Game.Act(action, s.now())
	s.publish(v, notices)
	return err
}

// Tick fires any game timers that are due
func (s *PlayService) Tick(v *Visitor) {
	if v.Game == nil {
		return
	}
	s.publish(v, v.Game.Tick(s.now()))
}

// RestartGame closes the running game and opens the same kind again
func (s *PlayService) RestartGame(v *Visitor) (*games.Session, error) {
	if v.Game == nil {
		return nil, ErrNoActiveGame
	}
	return s.OpenGame(v, string(v.Game.Kind))
}

// CloseGame discards the running game and records its score
func (s *PlayService) CloseGame(v *Visitor) {
	if v.Game == nil {
		return
	}
	score := v.Game.Score
	v.Game = nil
	if err := s.progress.RecordGame(v, score); err != nil {
		log.Printf("Failed to record game progress: %v", err)
	}
}

// NextDeadline returns when the running game next changes on its own.
// Banners are not included; the page fades them out client side.
func (s *PlayService) NextDeadline(v *Visitor) (time.Time, bool) {
	if v.Game == nil {
		return time.Time{}, false
	}
	return v.Game.NextDeadline()
}

func (s *PlayService) publish(v *Visitor, notices []games.Notice) {
	for _, n := range notices {
		kind := notify.Success
		if !n.Success {
			kind = notify.Error
		}
		v.Notifier.Notify(n.Message, kind)
	}
}
