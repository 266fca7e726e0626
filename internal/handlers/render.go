package handlers

import (
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"littlestars/internal/presentation"
	"littlestars/internal/security"
	"littlestars/internal/service"
)

// Renderer executes page templates with the shared layout data filled in
type Renderer struct {
	templates *template.Template
	csrf      *security.CSRFGenerator
	play      *service.PlayService
	now       func() time.Time
}

// NewRenderer creates a renderer
func NewRenderer(templates *template.Template, csrf *security.CSRFGenerator, play *service.PlayService, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{templates: templates, csrf: csrf, play: play, now: now}
}

// Layout builds the data every page needs for the visitor
func (rd *Renderer) Layout(v *service.Visitor, title string) LayoutData {
	data := LayoutData{
		Title:       title + " - Little Stars",
		User:        v.User,
		NavbarStyle: template.CSS(presentation.NavbarStyleAt(0).CSS()),
	}

	if token, err := rd.csrf.GenerateToken(v.ID); err == nil {
		data.CSRFToken = token
	} else {
		log.Printf("Failed to generate CSRF token: %v", err)
	}

	if banner, ok := v.Notifier.Current(); ok {
		data.Banner = &BannerView{
			Message: banner.Message,
			Icon:    banner.Kind.Icon(),
			Color:   banner.Kind.Color(),

			ExpiresInMS: banner.ExpiresAt.Sub(rd.now()).Milliseconds(),
		}
	}

	if at, ok := rd.play.NextDeadline(v); ok {
		data.RefreshSeconds = refreshSeconds(at.Sub(rd.now()))
	}
	return data
}

// refreshSeconds rounds a delay up to whole seconds, at least one
func refreshSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

// Render executes a named template
func (rd *Renderer) Render(w http.ResponseWriter, name string, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := rd.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s template: %v", name, err)
	}
}

// redirectBack returns to the page the request came from when it is on
// this site, otherwise to fallback
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := fallback
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Path != "" && (ref.Host == "" || ref.Host == r.Host) {
		target = ref.Path
		if ref.Fragment != "" {
			target += "#" + ref.Fragment
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// LoadTemplates parses every page template in dir
func LoadTemplates(dir string) (*template.Template, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found in %s", dir)
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
