// Package session persists the interactive browser's view between runs.
//
// A [Session] records the window, scale mode and biozone columns the user
// last looked at. The CLI restores it when `strata browse` starts and saves
// it on exit. Sessions expire after [DefaultTTL] so a stale view does not
// linger forever.
//
// # Usage
//
//	store, err := session.NewFileStore("") // ~/.config/strata/sessions/
//	if err != nil {
//	    return err
//	}
//	sess, err := store.Get(ctx, session.BrowseID)
//	if sess == nil {
//	    sess = session.New(session.BrowseID, "cenozoic", 0, 66, "linear", nil)
//	}
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/strata/pkg/interval"
)

// DefaultTTL is how long a saved view stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// BrowseID is the session ID used by the terminal browser.
const BrowseID = "browse"

// Session stores a chart view.
type Session struct {
	ID        string    `json:"id"`
	Preset    string    `json:"preset,omitempty"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Mode      string    `json:"mode"`
	Biozones  []string  `json:"biozones,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Window returns the saved window, or false when the bounds are invalid.
func (s *Session) Window() (interval.Window, bool) {
	w, err := interval.NewWindow(s.Min, s.Max)
	return w, err == nil
}

// Touch refreshes the timestamps.
func (s *Session) Touch() {
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(DefaultTTL)
}

// Store defines the interface for session persistence.
type Store interface {
	// Get returns the session, or nil if it does not exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)
	// Set stores a session.
	Set(ctx context.Context, sess *Session) error
	// Delete removes a session.
	Delete(ctx context.Context, id string) error
	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
	// Close releases resources.
	Close() error
}

// New creates a session for a view. An empty id gets a random one.
func New(id, preset string, min, max float64, mode string, biozones []string) *Session {
	if id == "" {
		id = GenerateID()
	}
	s := &Session{
		ID:       id,
		Preset:   preset,
		Min:      min,
		Max:      max,
		Mode:     mode,
		Biozones: biozones,
	}
	s.Touch()
	return s
}

// GenerateID returns a random session ID.
func GenerateID() string {
	return uuid.NewString()
}
