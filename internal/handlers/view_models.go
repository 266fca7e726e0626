package handlers

import (
	"html/template"

	"littlestars/internal/games"
	"littlestars/internal/models"
	"littlestars/internal/service"
	"littlestars/internal/story"
)

// BannerView is the notification banner as the layout draws it
type BannerView struct {
	Message string
	Icon    string
	Color   string

	// Remaining lifetime in milliseconds, used by the page to fade it out
	ExpiresInMS int64
}

// LayoutData is shared by every page
type LayoutData struct {
	Title          string
	User           *models.User
	Banner         *BannerView
	CSRFToken      string
	RefreshSeconds int
	NavbarStyle    template.CSS
}

type GameCard struct {
	Kind  games.Kind
	Title string
	Icon  string
	Blurb string
}

type HomeViewData struct {
	LayoutData
	Stories       []models.Story
	Games         []GameCard
	Letters       []string
	Contact       service.ContactMessage
	ContactErrors map[string]bool
}

type StoryViewData struct {
	LayoutData
	Page story.PageView
}

type GameViewData struct {
	LayoutData
	Game    *games.Session
	Palette []games.Swatch
}

type LoginViewData struct {
	LayoutData
	Tab    string
	Email  string
	Name   string
	Demo   []models.User
	Levels []models.Level
}

type DashboardViewData struct {
	LayoutData
	Progress   models.ProgressRecord
	LevelLabel string
}
