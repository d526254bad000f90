// Package reveal drives the progressive display of a token stream onto
// a mount tree, one token per tick. A session owns the stream cursor
// and the mount; observers subscribe to its step events rather than
// polling the mount, so reactions such as marker activation happen on
// the same step that exposes the content.
//
// Sessions are single-threaded by construction: every method runs on
// the program's update loop, never concurrently.
package reveal

import (
	"time"

	"github.com/fennwick/tome/internal/doc"
)

// Status is a session's lifecycle phase. Transitions only move forward:
// Idle → Running → Completed or Cancelled.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// EventKind discriminates session events.
type EventKind int

const (
	// EventStep reports one token applied to the mount.
	EventStep EventKind = iota
	// EventCompleted fires once, after the final token's step event.
	EventCompleted
	// EventCancelled fires once. The mount keeps whatever had been
	// revealed; cancellation never rolls content back.
	EventCancelled
)

// Event is delivered synchronously to subscribers during the step that
// produced it.
type Event struct {
	Kind  EventKind
	Token doc.Token // EventStep only
	// Closed is the subtree that became structurally complete on this
	// step: the element a close token popped, or an atomic subtree.
	// Nil for open and glyph steps.
	Closed *doc.Node
}

// Session replays one token stream onto one mount. A session is
// single-use: once completed or cancelled it never runs again.
type Session struct {
	tokens   []doc.Token
	cursor   int
	mount    *doc.Node
	builder  *doc.Builder
	interval time.Duration
	status   Status
	subs     []func(Event)
}

// NewSession flattens tree and prepares a session that will reveal it
// under mount at one token per interval. The mount is cleared on Start,
// not here, so a previous session's content stays visible until the
// replacement actually begins.
func NewSession(tree, mount *doc.Node, interval time.Duration) *Session {
	return &Session{
		tokens:   doc.Tokenize(tree),
		mount:    mount,
		builder:  doc.NewBuilder(mount),
		interval: interval,
	}
}

// Subscribe registers an event observer. Subscribers must be attached
// before Start; events are delivered in subscription order.
func (s *Session) Subscribe(fn func(Event)) {
	s.subs = append(s.subs, fn)
}

func (s *Session) emit(ev Event) {
	for _, fn := range s.subs {
		fn(ev)
	}
}

// Start clears the mount and begins the run. Starting an empty stream
// completes immediately.
func (s *Session) Start() {
	if s.status != StatusIdle {
		return
	}
	s.builder.Reset()
	s.status = StatusRunning
	if len(s.tokens) == 0 {
		s.complete()
	}
}

// Step applies the next token and reports whether the session is still
// running afterward. Calling Step on a finished or idle session is a
// no-op.
func (s *Session) Step() bool {
	if s.status != StatusRunning {
		return false
	}
	tok := s.tokens[s.cursor]
	closed := s.builder.Apply(tok)
	s.cursor++
	s.emit(Event{Kind: EventStep, Token: tok, Closed: closed})

	if s.cursor == len(s.tokens) {
		s.complete()
		return false
	}
	return true
}

// Drain applies every remaining token in one call, stepping through the
// stream so subscribers still see each event, then completes. This is
// the skip control; it is not a distinct terminal state.
func (s *Session) Drain() {
	for s.Step() {
	}
}

func (s *Session) complete() {
	s.status = StatusCompleted
	s.emit(Event{Kind: EventCompleted})
}

// Cancel stops a running session in place. The partial mount is kept
// as-is. Cancelling a session that is not running has no effect, so
// repeated cancels emit a single event.
func (s *Session) Cancel() {
	if s.status != StatusRunning {
		return
	}
	s.status = StatusCancelled
	s.emit(Event{Kind: EventCancelled})
}

// Status returns the current lifecycle phase.
func (s *Session) Status() Status { return s.status }

// Interval is the scheduling hint for the tick driving this session.
func (s *Session) Interval() time.Duration { return s.interval }

// Mount returns the tree the session reveals into.
func (s *Session) Mount() *doc.Node { return s.mount }

// Progress reports applied and total token counts for the footer
// indicator.
func (s *Session) Progress() (done, total int) {
	return s.cursor, len(s.tokens)
}
