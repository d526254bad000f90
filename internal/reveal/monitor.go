package reveal

import "github.com/fennwick/tome/internal/doc"

// Monitor activates annotation markers as the subtree containing them
// finishes mounting. It subscribes to session events, so activation
// lands on the exact step that completes the marker's element instead
// of some later scan. On completion it sweeps the whole mount once,
// which also covers markers inside atomic subtrees.
type Monitor struct {
	session  *Session
	activate func(key string)
}

// NewMonitor builds a monitor. activate is called once per marker key
// as that marker becomes active; it may be nil when only the Active
// flags matter.
func NewMonitor(activate func(key string)) *Monitor {
	return &Monitor{activate: activate}
}

// Attach subscribes the monitor to a session. Attach before Start so no
// step event is missed.
func (m *Monitor) Attach(s *Session) {
	m.session = s
	s.Subscribe(m.handle)
}

func (m *Monitor) handle(ev Event) {
	switch ev.Kind {
	case EventStep:
		if ev.Closed != nil {
			m.sweep(ev.Closed)
		}
	case EventCompleted:
		// Elements still open at exhaustion never saw a close token;
		// the final sweep catches any markers under them.
		m.sweep(m.session.Mount())
	case EventCancelled:
		// Markers already activated stay active; nothing to undo.
	}
}

func (m *Monitor) sweep(root *doc.Node) {
	root.Walk(func(n *doc.Node) bool {
		if n.Kind == doc.KindMarker && !n.Active {
			n.Active = true
			if m.activate != nil {
				m.activate(n.Key)
			}
		}
		return true
	})
}
