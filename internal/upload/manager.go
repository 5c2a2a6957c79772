package upload

import (
	"context"
	"sync"
)

// Hooks deliver session outcomes back into the owning form. They are invoked
// from transfer goroutines with no manager or session lock held.
type Hooks struct {
	OnDone  func(field, url string) // terminal success: url written into the form value
	OnReset func(field string)      // cancellation or removal: field silently cleared
	OnError func(field, msg string) // transport failure: surfaced as the field's error
}

// Manager enforces the one-active-transfer-per-field rule across a form's
// FILE fields and owns session teardown.
type Manager struct {
	mu        sync.Mutex
	transport Transport
	hooks     Hooks
	sessions  map[string]*Session
}

func NewManager(transport Transport, hooks Hooks) *Manager {
	return &Manager{
		transport: transport,
		hooks:     hooks,
		sessions:  make(map[string]*Session),
	}
}

// Select begins a new upload session for the field. If a previous session for
// the same field is still active its cancel handle is invoked first, so at
// most one transfer per field is ever in flight.
func (m *Manager) Select(ctx context.Context, field string, file File) *Session {
	m.mu.Lock()
	if prev, ok := m.sessions[field]; ok && prev.Active() {
		prev.Cancel()
	}
	session := newSession(field, file)
	m.sessions[field] = session
	m.mu.Unlock()

	session.start(ctx, file, m.transport, m.hooksFor(session))
	return session
}

// hooksFor gates the form-facing hooks on the session still being the current
// one for its field. A superseded session settling late (its cancellation
// lands after a reselected file already finished) must not clobber the newer
// session's outcome.
func (m *Manager) hooksFor(session *Session) Hooks {
	current := func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.sessions[session.Field] == session
	}
	return Hooks{
		OnDone: func(field, url string) {
			if current() && m.hooks.OnDone != nil {
				m.hooks.OnDone(field, url)
			}
		},
		OnReset: func(field string) {
			if current() && m.hooks.OnReset != nil {
				m.hooks.OnReset(field)
			}
		},
		OnError: func(field, msg string) {
			if current() && m.hooks.OnError != nil {
				m.hooks.OnError(field, msg)
			}
		},
	}
}

// Remove cancels any in-flight transfer for the field, releases its preview,
// and clears the field's value. The previously uploaded object, if any, is
// left in storage.
func (m *Manager) Remove(field string) {
	m.mu.Lock()
	session, ok := m.sessions[field]
	delete(m.sessions, field)
	m.mu.Unlock()

	if ok {
		session.Cancel()
		session.Preview().Release()
	}
	if m.hooks.OnReset != nil {
		m.hooks.OnReset(field)
	}
}

// Session returns the current session for a field, or nil.
func (m *Manager) Session(field string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[field]
}

// Active reports whether any field still has a non-terminal transfer.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, session := range m.sessions {
		if session.Active() {
			return true
		}
	}
	return false
}

// Teardown cancels every session and releases all preview handles. Dangling
// transfers must not mutate state after the owning form is discarded.
func (m *Manager) Teardown() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, session := range sessions {
		session.Cancel()
		session.Preview().Release()
	}
}
