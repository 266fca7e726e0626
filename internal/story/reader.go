// Package story holds the built-in picture stories and the modal reader that
// pages through them.
package story

import (
	"errors"
	"fmt"

	"littlestars/internal/models"
)

var ErrUnknownStory = errors.New("unknown story")

// Reader is either closed or open at a page of one story.
// Invariant: 0 <= page < len(story.Pages) while open.
type Reader struct {
	story *models.Story
	page  int
}

// PageView is what the story modal renders
type PageView struct {
	StoryID   string
	Title     string
	Scene     string
	Text      string
	Page      int
	PageCount int
	Label     string
	HasPrev   bool
	HasNext   bool
}

// Open shows the first page of the story with the given id.
// An unknown id leaves the reader untouched.
func (r *Reader) Open(catalog *Catalog, id string) error {
	s, ok := catalog.Get(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStory, id)
	}
	if len(s.Pages) == 0 {
		return fmt.Errorf("story %q has no pages", id)
	}
	r.story = &s
	r.page = 0
	return nil
}

// IsOpen reports whether a story is showing
func (r *Reader) IsOpen() bool {
	return r.story != nil
}

// Next turns the page forward; it reports false at the last page
func (r *Reader) Next() bool {
	if r.story == nil || r.page+1 >= len(r.story.Pages) {
		return false
	}
	r.page++
	return true
}

// Prev turns the page back; it reports false at the first page
func (r *Reader) Prev() bool {
	if r.story == nil || r.page == 0 {
		return false
	}
	r.page--
	return true
}

// Close hides the modal and forgets the page
func (r *Reader) Close() {
	r.story = nil
	r.page = 0
}

// View projects the current page. ok is false while closed.
func (r *Reader) View() (view PageView, ok bool) {
	if r.story == nil {
		return PageView{}, false
	}
	p := r.story.Pages[r.page]
	n := len(r.story.Pages)
	return PageView{
		StoryID:   r.story.ID,
		Title:     r.story.Title,
		Scene:     p.Scene,
		Text:      p.Text,
		Page:      r.page,
		PageCount: n,
		Label:     fmt.Sprintf("Page %d of %d", r.page+1, n),
		HasPrev:   r.page > 0,
		HasNext:   r.page < n-1,
	}, true
}
