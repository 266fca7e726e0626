package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"littlestars/internal/games"
	"littlestars/internal/service"
)

// GameHandler drives the mini-games
type GameHandler struct {
	render *Renderer
	play   *service.PlayService
}

// NewGameHandler creates a new game handler
func NewGameHandler(render *Renderer, play *service.PlayService) *GameHandler {
	return &GameHandler{render: render, play: play}
}

// Open starts a fresh game of the requested kind
func (h *GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	if _, err := h.play.OpenGame(visitor, r.PathValue("kind")); err != nil {
		if errors.Is(err, games.ErrUnknownGame) {
			respondWithError(w, http.StatusNotFound, "Game not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to open game", err)
		return
	}

	http.Redirect(w, r, "/game", http.StatusSeeOther)
}

// Show renders the running game
func (h *GameHandler) Show(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	if visitor.Game == nil {
		http.Redirect(w, r, "/#games", http.StatusSeeOther)
		return
	}

	h.render.Render(w, "game.tmpl", http.StatusOK, GameViewData{
		LayoutData: h.render.Layout(visitor, visitor.Game.Kind.Title()),
		Game:       visitor.Game,
		Palette:    games.Palette,
	})
}

// Action applies one click to the running game
func (h *GameHandler) Action(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "Failed to parse game action", err)
		return
	}

	action := games.Action{Index: -1, Value: r.FormValue("value")}
	if raw := r.FormValue("index"); raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, ErrInvalidRequest, "Invalid game action index", err)
			return
		}
		action.Index = index
	}

	if err := h.play.GameAction(visitor, action); err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveGame):
			http.Redirect(w, r, "/#games", http.StatusSeeOther)
		case errors.Is(err, games.ErrInvalidAction):
			respondWithError(w, http.StatusBadRequest, ErrInvalidRequest, "Rejected game action", err)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to apply game action", err)
		}
		return
	}

	http.Redirect(w, r, "/game", http.StatusSeeOther)
}

// Restart records the running game and starts the same kind again
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	if _, err := h.play.RestartGame(visitor); err != nil {
		if errors.Is(err, service.ErrNoActiveGame) {
			http.Redirect(w, r, "/#games", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to restart game", err)
		return
	}

	http.Redirect(w, r, "/game", http.StatusSeeOther)
}

// Close records and discards the running game
func (h *GameHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.play.CloseGame(GetVisitorFromContext(r.Context()))
	http.Redirect(w, r, "/#games", http.StatusSeeOther)
}
