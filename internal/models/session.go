package models

import "time"

// Flash categories understood by the views.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

// Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is server-side state referenced by the client's cookie token.
// UserID 0 means the visitor has not logged in.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Flashes   []Flash   `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	dirty  bool
	stored bool
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
	s.dirty = true
}

// PopFlashes returns queued messages and clears the queue.
func (s *Session) PopFlashes() []Flash {
	if len(s.Flashes) == 0 {
		return nil
	}
	out := s.Flashes
	s.Flashes = nil
	s.dirty = true
	return out
}

// Bind attaches the session to a user.
func (s *Session) Bind(userID int64, username string) {
	s.UserID = userID
	s.Username = username
	s.dirty = true
}

// Clear detaches the session from its user. Safe to call on an anonymous session.
func (s *Session) Clear() {
	if s.UserID == 0 && s.Username == "" {
		return
	}
	s.UserID = 0
	s.Username = ""
	s.dirty = true
}

// Dirty reports whether the session changed since it was loaded or saved.
func (s *Session) Dirty() bool { return s.dirty }

// MarkClean is called by the store after a successful save.
func (s *Session) MarkClean() { s.dirty = false }

// Stored reports whether the session has a row behind it. A new session
// stays in memory until its first change is saved.
func (s *Session) Stored() bool { return s.stored }

// MarkStored is called by the store once the row exists.
func (s *Session) MarkStored() { s.stored = true }
