package workspace

import "sync"

// Session tracks the single active workspace of one launcher
// invocation. Fallback attempts replace the active workspace, and the
// previous one is discarded at that point. Close releases whatever is
// active at exit. The keep option is fixed at session creation and
// suppresses all cleanup.
type Session struct {
	mu     sync.Mutex
	active *Workspace
	keep   bool
}

// NewSession creates a session. When keep is true, no workspace owned
// by this session is ever removed.
func NewSession(keep bool) *Session {
	return &Session{keep: keep}
}

// Keep reports whether cleanup is suppressed.
func (s *Session) Keep() bool {
	return s.keep
}

// Active returns the currently active workspace, or nil.
func (s *Session) Active() *Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active
}

// Activate makes ws the active workspace, discarding the previously
// active one unless keep is set. Returns any cleanup error from the
// discarded workspace; the activation itself always succeeds.
func (s *Session) Activate(ws *Workspace) error {
	s.mu.Lock()
	prev := s.active
	s.active = ws
	s.mu.Unlock()

	if prev == nil || prev == ws || s.keep {
		return nil
	}

	return prev.Remove()
}

// Close removes the active workspace unless keep is set. Safe to call
// more than once, and from a signal handler.
func (s *Session) Close() error {
	s.mu.Lock()
	ws := s.active
	s.active = nil
	s.mu.Unlock()

	if ws == nil || s.keep {
		return nil
	}

	return ws.Remove()
}
