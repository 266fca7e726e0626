package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"littlestars/internal/notify"
	"littlestars/internal/presentation"
)

// PresentationHandler serves the decorative effects of the landing page
type PresentationHandler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPresentationHandler creates a presentation handler. A nil rng is
// seeded from the clock.
func NewPresentationHandler(rng *rand.Rand) *PresentationHandler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &PresentationHandler{rng: rng}
}

type keyRequest struct {
	Code string `json:"code"`
}

type keyResponse struct {
	Triggered bool `json:"triggered"`
}

type pointerRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type pointerResponse struct {
	Spawned  bool                   `json:"spawned"`
	Particle *presentation.Particle `json:"particle,omitempty"`
}

// Letter praises a click on a floating letter
func (h *PresentationHandler) Letter(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	msg, err := presentation.LetterMessage(r.PathValue("letter"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequest, "Invalid floating letter", err)
		return
	}

	visitor.Notifier.Notify(msg, notify.Success)
	redirectBack(w, r, "/")
}

// Key feeds one key press to the visitor's secret code detector
func (h *PresentationHandler) Key(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	var req keyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequest, "Failed to decode key event", err)
		return
	}

	triggered := visitor.Konami.Push(req.Code)
	if triggered {
		visitor.Notifier.Notify(presentation.SecretMessage, notify.Success)
	}

	writeJSON(w, keyResponse{Triggered: triggered})
}

// Pointer decides whether a pointer movement spawns a letter particle
func (h *PresentationHandler) Pointer(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequest, "Failed to decode pointer event", err)
		return
	}

	h.mu.Lock()
	particle, ok := presentation.MaybeParticle(h.rng, req.X, req.Y)
	h.mu.Unlock()

	resp := pointerResponse{Spawned: ok}
	if ok {
		resp.Particle = &particle
	}
	writeJSON(w, resp)
}
