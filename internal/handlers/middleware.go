package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"littlestars/internal/security"
	"littlestars/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const VisitorContextKey ContextKey = "visitor"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens   *security.VisitorTokens
	registry *service.VisitorRegistry
	auth     *service.AuthService
	play     *service.PlayService
	csrf     *security.CSRFGenerator
	limiter  *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(
	tokens *security.VisitorTokens,
	registry *service.VisitorRegistry,
	auth *service.AuthService,
	play *service.PlayService,
	csrf *security.CSRFGenerator,
	limiter *security.RateLimiter,
) *Middleware {
	return &Middleware{
		tokens:   tokens,
		registry: registry,
		auth:     auth,
		play:     play,
		csrf:     csrf,
		limiter:  limiter,
	}
}

// Visitor resolves the visitor cookie, issuing a new one when it is missing
// or invalid. The visitor stays locked until the handler returns.
func (m *Middleware) Visitor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(security.VisitorCookieName); err == nil {
			if parsed, err := m.tokens.Parse(cookie.Value); err == nil {
				id = parsed
			} else {
				log.Printf("Discarding visitor cookie: %v", err)
			}
		}

		if id == "" {
			id = security.NewVisitorID()
			token, expires, err := m.tokens.Issue(id)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to issue visitor token", err)
				return
			}
			http.SetCookie(w, security.CreateVisitorCookie(r, token, expires))
		}

		visitor := m.registry.Get(id)
		visitor.Lock()
		defer visitor.Unlock()

		m.auth.Restore(visitor)
		m.play.Tick(visitor)

		ctx := context.WithValue(r.Context(), VisitorContextKey, visitor)
		next(w, r.WithContext(ctx))
	}
}

// CSRFProtect rejects state-changing requests without the visitor's token.
// It must run inside Visitor.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := GetVisitorFromContext(r.Context())
		if visitor == nil || !m.csrf.ValidateToken(visitor.ID, security.TokenFromRequest(r)) {
			log.Printf("CSRF check failed: %s %s", r.Method, r.URL.Path)
			http.Error(w, ErrForbidden, http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// RateLimit throttles requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			log.Printf("Rate limit exceeded for %s on %s", ip, r.URL.Path)
			http.Error(w, ErrTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetVisitorFromContext retrieves the visitor from the request context
func GetVisitorFromContext(ctx context.Context) *service.Visitor {
	visitor, ok := ctx.Value(VisitorContextKey).(*service.Visitor)
	if !ok {
		return nil
	}
	return visitor
}
