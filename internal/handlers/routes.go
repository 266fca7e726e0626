package handlers

import "net/http"

// RegisterRoutes wires every page and action onto mux
func RegisterRoutes(
	mux *http.ServeMux,
	m *Middleware,
	home *HomeHandler,
	presentation *PresentationHandler,
	stories *StoryHandler,
	games *GameHandler,
	auth *AuthHandler,
) {
	// post wraps a state-changing handler
	post := func(h http.HandlerFunc) http.HandlerFunc {
		return m.Visitor(m.CSRFProtect(h))
	}

	// Pages
	mux.HandleFunc("GET /", m.Visitor(home.Home))
	mux.HandleFunc("GET /story", m.Visitor(stories.Show))
	mux.HandleFunc("GET /game", m.Visitor(games.Show))
	mux.HandleFunc("GET /login", m.Visitor(auth.ShowLogin))
	mux.HandleFunc("GET /dashboard", m.Visitor(auth.Dashboard))

	// Landing page
	mux.HandleFunc("POST /contact", post(home.Contact))
	mux.HandleFunc("POST /notifications/dismiss", post(home.DismissNotification))
	mux.HandleFunc("POST /letters/{letter}", post(presentation.Letter))
	mux.HandleFunc("POST /api/keys", post(presentation.Key))
	mux.HandleFunc("POST /api/pointer", post(presentation.Pointer))

	// Story reader
	mux.HandleFunc("POST /stories/{id}/open", post(stories.Open))
	mux.HandleFunc("POST /story/next", post(stories.Next))
	mux.HandleFunc("POST /story/prev", post(stories.Prev))
	mux.HandleFunc("POST /story/close", post(stories.Close))

	// Games
	mux.HandleFunc("POST /games/{kind}/open", post(games.Open))
	mux.HandleFunc("POST /game/action", post(games.Action))
	mux.HandleFunc("POST /game/restart", post(games.Restart))
	mux.HandleFunc("POST /game/close", post(games.Close))

	// Session
	mux.HandleFunc("POST /login", m.RateLimit(post(auth.Login)))
	mux.HandleFunc("POST /register", m.RateLimit(post(auth.Register)))
	mux.HandleFunc("POST /guest/{level}", post(auth.Guest))
	mux.HandleFunc("POST /logout", post(auth.Logout))
}
