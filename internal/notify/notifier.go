// Package notify implements the single transient message banner shown at the
// top of every page.
package notify

import "time"

// DefaultTTL is how long a banner stays up when nobody closes it
const DefaultTTL = 5 * time.Second

// Kind selects the banner's colour and icon
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Icon returns the icon class rendered next to the message
func (k Kind) Icon() string {
	switch k {
	case Success:
		return "fa-check-circle"
	case Error:
		return "fa-exclamation-circle"
	default:
		return "fa-info-circle"
	}
}

// Color returns the banner background colour
func (k Kind) Color() string {
	switch k {
	case Success:
		return "#2ecc71"
	case Error:
		return "#e74c3c"
	default:
		return "#3498db"
	}
}

// Banner is a rendered notification
type Banner struct {
	Message   string
	Kind      Kind
	ExpiresAt time.Time
}

// Notifier holds at most one banner. It is not safe for concurrent use;
// callers serialize access per visitor.
type Notifier struct {
	current *Banner
	ttl     time.Duration
	now     func() time.Time
}

// New creates a notifier using the given clock
func New(now func() time.Time) *Notifier {
	if now == nil {
		now = time.Now
	}
	return &Notifier{ttl: DefaultTTL, now: now}
}

// Notify replaces whatever banner is showing
func (n *Notifier) Notify(message string, kind Kind) {
	switch kind {
	case Success, Error, Info:
	default:
		kind = Info
	}
	n.current = &Banner{
		Message:   message,
		Kind:      kind,
		ExpiresAt: n.now().Add(n.ttl),
	}
}

// Dismiss removes the banner immediately
func (n *Notifier) Dismiss() {
	n.current = nil
}

// Current returns the live banner, if any. Expired banners are dropped.
func (n *Notifier) Current() (Banner, bool) {
	if n.current == nil {
		return Banner{}, false
	}
	if !n.now().Before(n.current.ExpiresAt) {
		n.current = nil
		return Banner{}, false
	}
	return *n.current, true
}
