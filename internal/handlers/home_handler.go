package handlers

import (
	"net/http"

	"littlestars/internal/games"
	"littlestars/internal/service"
)

var gameCards = []GameCard{
	{Kind: games.Memory, Title: games.Memory.Title(), Icon: "🧠", Blurb: "Find the matching pairs of cards."},
	{Kind: games.Counting, Title: games.Counting.Title(), Icon: "⭐", Blurb: "Click exactly the right number of stars."},
	{Kind: games.Colors, Title: games.Colors.Title(), Icon: "🎨", Blurb: "Mix two paints to make a new colour."},
	{Kind: games.Alphabet, Title: games.Alphabet.Title(), Icon: "🔤", Blurb: "Match each animal to its first letter."},
}

var floatingLetters = []string{"A", "B", "C", "D", "E", "F"}

// HomeHandler serves the landing page and its contact form
type HomeHandler struct {
	render  *Renderer
	play    *service.PlayService
	contact *service.ContactService
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(render *Renderer, play *service.PlayService, contact *service.ContactService) *HomeHandler {
	return &HomeHandler{render: render, play: play, contact: contact}
}

// Home renders the landing page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	visitor := GetVisitorFromContext(r.Context())
	h.render.Render(w, "home.tmpl", http.StatusOK, h.homeData(visitor, service.ContactMessage{}, nil))
}

// Contact accepts the contact form. Invalid forms re-render with the
// offending fields highlighted.
func (h *HomeHandler) Contact(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "Failed to parse contact form", err)
		return
	}

	msg := service.ContactMessage{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Message: r.FormValue("message"),
	}

	fields, err := h.contact.Submit(r.Context(), visitor, msg)
	if err != nil {
		h.render.Render(w, "home.tmpl", http.StatusUnprocessableEntity, h.homeData(visitor, msg, fields))
		return
	}

	http.Redirect(w, r, "/#contact", http.StatusSeeOther)
}

// DismissNotification closes the banner
func (h *HomeHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())
	visitor.Notifier.Dismiss()
	redirectBack(w, r, "/")
}

func (h *HomeHandler) homeData(v *service.Visitor, msg service.ContactMessage, invalid []string) HomeViewData {
	data := HomeViewData{
		LayoutData: h.render.Layout(v, "Home"),
		Stories:    h.play.Catalog().List(),
		Games:      gameCards,
		Letters:    floatingLetters,
		Contact:    msg,
	}
	if len(invalid) > 0 {
		data.ContactErrors = make(map[string]bool, len(invalid))
		for _, field := range invalid {
			data.ContactErrors[field] = true
		}
	}
	return data
}
