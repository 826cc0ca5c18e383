package glide

import "time"

// Toaster shows one transient notification at a time, auto-dismissed after
// its deadline. Showing a new toast replaces the current one.
type Toaster struct {
	theme Theme
	text  string
	until time.Time
}

// DefaultToastDuration is how long a toast stays up.
const DefaultToastDuration = 2 * time.Second

// NewToaster creates an empty toaster.
func NewToaster(theme Theme) *Toaster {
	return &Toaster{theme: theme}
}

// Show displays text until now+d.
func (t *Toaster) Show(text string, d time.Duration) {
	t.text = text
	t.until = time.Now().Add(d)
}

// Active returns the current toast text, or "" once expired.
func (t *Toaster) Active(now time.Time) string {
	if t.text == "" || now.After(t.until) {
		return ""
	}
	return t.text
}

// View renders the toast for the status row, empty string when idle.
func (t *Toaster) View(now time.Time) string {
	text := t.Active(now)
	if text == "" {
		return ""
	}
	return t.theme.Toast.Render(text)
}
