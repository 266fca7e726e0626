package handlers

import (
	"errors"
	"net/http"

	"littlestars/internal/service"
	"littlestars/internal/story"
)

// StoryHandler drives the story reader
type StoryHandler struct {
	render *Renderer
	play   *service.PlayService
}

// NewStoryHandler creates a new story handler
func NewStoryHandler(render *Renderer, play *service.PlayService) *StoryHandler {
	return &StoryHandler{render: render, play: play}
}

// Open opens a story at its first page
func (h *StoryHandler) Open(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	if err := h.play.OpenStory(visitor, r.PathValue("id")); err != nil {
		if errors.Is(err, story.ErrUnknownStory) {
			respondWithError(w, http.StatusNotFound, "Story not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to open story", err)
		return
	}

	http.Redirect(w, r, "/story", http.StatusSeeOther)
}

// Show renders the current page of the open story
func (h *StoryHandler) Show(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	page, ok := visitor.Reader.View()
	if !ok {
		http.Redirect(w, r, "/#stories", http.StatusSeeOther)
		return
	}

	h.render.Render(w, "story.tmpl", http.StatusOK, StoryViewData{
		LayoutData: h.render.Layout(visitor, page.Title),
		Page:       page,
	})
}

// Next turns to the next page
func (h *StoryHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.play.NextPage(GetVisitorFromContext(r.Context()))
	http.Redirect(w, r, "/story", http.StatusSeeOther)
}

// Prev turns to the previous page
func (h *StoryHandler) Prev(w http.ResponseWriter, r *http.Request) {
	h.play.PrevPage(GetVisitorFromContext(r.Context()))
	http.Redirect(w, r, "/story", http.StatusSeeOther)
}

// Close closes the reader
func (h *StoryHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.play.CloseStory(GetVisitorFromContext(r.Context()))
	http.Redirect(w, r, "/#stories", http.StatusSeeOther)
}
