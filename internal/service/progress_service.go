package service

import (
	"encoding/json"
	"fmt"
	"log"

	"littlestars/internal/models"
)

// ProgressService keeps the per-user learning counters. Guests are never
// read or written.
type ProgressService struct {
	store KeyValueStore
}

// NewProgressService creates a new progress service
func NewProgressService(store KeyValueStore) *ProgressService {
	return &ProgressService{store: store}
}

// Get returns the visitor's current progress. A missing or unreadable record
// is the zero record.
func (s *ProgressService) Get(v *Visitor) (models.ProgressRecord, error) {
	if v.User.IsGuest() {
		return models.ProgressRecord{}, nil
	}
	return s.load(v.ID, v.User.Email)
}

// RecordStory counts one opened story
func (s *ProgressService) RecordStory(v *Visitor) error {
	return s.update(v, func(p *models.ProgressRecord) {
		p.StoriesRead++
	})
}

// RecordGame counts one finished game and adds its score
func (s *ProgressService) RecordGame(v *Visitor, score int) error {
	return s.update(v, func(p *models.ProgressRecord) {
		p.GamesPlayed++
		p.TotalScore += score
	})
}

func (s *ProgressService) update(v *Visitor, apply func(*models.ProgressRecord)) error {
	if v.User.IsGuest() {
		return nil
	}

	progress, err := s.load(v.ID, v.User.Email)
	if err != nil {
		return err
	}
	apply(&progress)

	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}
	if err := s.store.Set(v.ID, models.ProgressKey(v.User.Email), string(data)); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (s *ProgressService) load(namespace, email string) (models.ProgressRecord, error) {
	var progress models.ProgressRecord

	raw, ok, err := s.store.Get(namespace, models.ProgressKey(email))
	if err != nil {
		return progress, fmt.Errorf("failed to load progress: %w", err)
	}
	if !ok {
		return progress, nil
	}
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		log.Printf("Warning: discarding unreadable progress for %s: %v", email, err)
		return models.ProgressRecord{}, nil
	}
	return progress, nil
}
