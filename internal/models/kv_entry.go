package models

import "time"

// KVEntry is one stored value in a visitor's namespace
type KVEntry struct {
	Namespace string    `json:"namespace"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
