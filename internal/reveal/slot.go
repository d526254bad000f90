package reveal

// Slot enforces the one-live-session rule for a presentation surface.
// Presenting new content cancels whatever the slot was showing before
// the replacement starts, so two sessions never write the same surface.
type Slot struct {
	session *Session
}

// Present cancels the current session, if any, installs next, and
// starts it.
func (s *Slot) Present(next *Session) {
	if s.session != nil {
		s.session.Cancel()
	}
	s.session = next
	next.Start()
}

// Session returns the slot's current session, or nil before the first
// Present.
func (s *Slot) Session() *Session { return s.session }

// Cancel stops the current session without installing a replacement.
// The revealed content stays on the surface.
func (s *Slot) Cancel() {
	if s.session != nil {
		s.session.Cancel()
	}
}

// Clear cancels and detaches the current session, used when the surface
// itself is dismissed.
func (s *Slot) Clear() {
	s.Cancel()
	s.session = nil
}
