// Package presentation holds the small decorative behaviours of the home
// page: the hidden key sequence, the clickable floating letters, the navbar
// look at a scroll offset and the letter particles that follow the pointer.
package presentation

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

var ErrInvalidLetter = errors.New("invalid letter")

// KonamiSequence is the key-code sequence that reveals the secret
var KonamiSequence = []string{
	"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown",
	"ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight",
	"KeyB", "KeyA",
}

const SecretMessage = "🌟 You found the secret! Welcome to the magical world of Little Stars! 🌟"

// KonamiDetector keeps a sliding window of the most recent key codes
type KonamiDetector struct {
	window []string
}

// Push records a key code and reports whether it completed the sequence.
// The window is emptied after a trigger.
func (d *KonamiDetector) Push(code string) bool {
	d.window = append(d.window, code)
	if len(d.window) > len(KonamiSequence) {
		d.window = d.window[len(d.window)-len(KonamiSequence):]
	}
	if len(d.window) != len(KonamiSequence) {
		return false
	}
	for i, c := range KonamiSequence {
		if d.window[i] != c {
			return false
		}
	}
	d.window = nil
	return true
}

// LetterMessage returns the praise shown for clicking a floating letter
func LetterMessage(letter string) (string, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return "", fmt.Errorf("%w: %q", ErrInvalidLetter, letter)
	}
	return fmt.Sprintf("Letter %s! Great job!", letter), nil
}

// NavbarScrollThreshold is the scroll offset past which the navbar turns solid
const NavbarScrollThreshold = 100

// NavbarStyle is the inline style applied to the navbar
type NavbarStyle struct {
	Background string
	BoxShadow  string
}

// CSS renders the style as an inline style attribute value
func (s NavbarStyle) CSS() string {
	return fmt.Sprintf("background: %s; box-shadow: %s;", s.Background, s.BoxShadow)
}

// NavbarStyleAt returns the navbar look for a vertical scroll offset
func NavbarStyleAt(scrollY float64) NavbarStyle {
	if scrollY > NavbarScrollThreshold {
		return NavbarStyle{
			Background: "rgba(255, 255, 255, 0.98)",
			BoxShadow:  "0 2px 20px rgba(0, 0, 0, 0.1)",
		}
	}
	return NavbarStyle{
		Background: "rgba(255, 255, 255, 0.95)",
		BoxShadow:  "none",
	}
}

// ParticleChance is the probability that a pointer move spawns a particle
const ParticleChance = 0.1

// ParticleColors are the theme colours a particle can take
var ParticleColors = []string{
	"var(--primary-color)",
	"var(--secondary-color)",
	"var(--accent-color)",
	"var(--success-color)",
	"var(--warning-color)",
}

// Particle is a floating letter drawn at the pointer position
type Particle struct {
	Letter string  `json:"letter"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// MaybeParticle rolls for a particle at the given position
func MaybeParticle(rng *rand.Rand, x, y float64) (Particle, bool) {
	if rng.Float64() >= ParticleChance {
		return Particle{}, false
	}
	return Particle{
		Letter: string(rune('A' + rng.Intn(26))),
		Color:  ParticleColors[rng.Intn(len(ParticleColors))],
		X:      x,
		Y:      y,
	}, true
}
