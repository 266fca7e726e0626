package handlers

import (
	"errors"
	"log"
	"net/http"

	"littlestars/internal/models"
	"littlestars/internal/service"
	"littlestars/internal/validation"
)

// AuthHandler handles the demo login flow and the dashboard
type AuthHandler struct {
	render      *Renderer
	authService *service.AuthService
	progress    *service.ProgressService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(render *Renderer, authService *service.AuthService, progress *service.ProgressService) *AuthHandler {
	return &AuthHandler{
		render:      render,
		authService: authService,
		progress:    progress,
	}
}

// ShowLogin renders the login and registration forms
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	tab := "login"
	if r.URL.Query().Get("tab") == "register" {
		tab = "register"
	}
	h.render.Render(w, "login.tmpl", http.StatusOK, h.loginData(visitor, tab, "", ""))
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "Failed to parse login form", err)
		return
	}

	email := r.FormValue("email")
	if _, err := h.authService.Login(visitor, email, r.FormValue("password")); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.render.Render(w, "login.tmpl", http.StatusUnauthorized, h.loginData(visitor, "login", email, ""))
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Login failed", err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "Failed to parse registration form", err)
		return
	}

	in := service.RegisterInput{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Age:      r.FormValue("age"),
		Level:    r.FormValue("level"),
	}

	if _, err := h.authService.Register(visitor, in); err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) || errors.Is(err, service.ErrEmailTaken) {
			h.render.Render(w, "login.tmpl", http.StatusUnprocessableEntity, h.loginData(visitor, "register", in.Email, in.Name))
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Registration failed", err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Guest switches the visitor to a guest at the chosen level
func (h *AuthHandler) Guest(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	if _, err := h.authService.SetGuest(visitor, r.PathValue("level")); err != nil {
		if errors.Is(err, service.ErrInvalidLevel) {
			respondWithError(w, http.StatusBadRequest, ErrInvalidRequest, "Invalid guest level", err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to start guest session", err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout ends the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	if err := h.authService.Logout(visitor); err != nil {
		log.Printf("Error during logout: %v", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Dashboard shows the signed-in user's level and progress
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	visitor := GetVisitorFromContext(r.Context())

	if visitor.User == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	progress, err := h.progress.Get(visitor)
	if err != nil {
		log.Printf("Failed to load progress for dashboard: %v", err)
	}

	h.render.Render(w, "dashboard.tmpl", http.StatusOK, DashboardViewData{
		LayoutData: h.render.Layout(visitor, "Dashboard"),
		Progress:   progress,
		LevelLabel: visitor.User.ChildLevel.Label(),
	})
}

func (h *AuthHandler) loginData(v *service.Visitor, tab, email, name string) LoginViewData {
	return LoginViewData{
		LayoutData: h.render.Layout(v, "Login"),
		Tab:        tab,
		Email:      email,
		Name:       name,
		Demo:       service.DemoAccounts(),
		Levels:     models.Levels,
	}
}
