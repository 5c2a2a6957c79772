package upload

import (
	"context"
	"errors"
	"sync"
)

// State is the lifecycle position of one file transfer.
type State string

const (
	StateIdle       State = "IDLE"
	StateSelected   State = "SELECTED"
	StateUploading  State = "UPLOADING"
	StateProcessing State = "PROCESSING" // bytes fully sent, server reply pending
	StateDone       State = "DONE"
	StateCancelled  State = "CANCELLED"
	StateError      State = "ERROR"
)

// Session tracks one file transfer for one FILE field, from selection to a
// terminal state. It is ephemeral and never persisted. Cancellation is not an
// error: a cancelled session silently resets the field instead of surfacing
// a message.
type Session struct {
	Field string

	mu        sync.Mutex
	state     State
	progress  int
	url       string
	errMsg    string
	cancel    context.CancelFunc
	cancelled bool
	preview   *Preview
	done      chan struct{}
}

func newSession(field string, file File) *Session {
	return &Session{
		Field:   field,
		state:   StateSelected,
		preview: NewPreview(file, nil),
		done:    make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Progress returns the transfer's byte progress as 0..100.
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// URL returns the stored object URL once the session is Done.
func (s *Session) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Err returns the surfaced message for an Error session.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Preview returns the local preview handle shown while the transfer runs.
func (s *Session) Preview() *Preview {
	return s.preview
}

// Active reports whether the transfer has not yet reached a terminal state.
func (s *Session) Active() bool {
	switch s.State() {
	case StateSelected, StateUploading, StateProcessing:
		return true
	}
	return false
}

// Cancelled reports whether the cancel handle was invoked.
func (s *Session) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// Cancel invokes the session's cancel handle. The transfer goroutine observes
// the cancellation and moves the session to Cancelled; calling Cancel on a
// terminal session is a no-op.
func (s *Session) Cancel() {
	s.mu.Lock()
	s.cancelled = true
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the session reaches a terminal state.
func (s *Session) Wait() {
	<-s.done
}

// start launches the transfer goroutine. Selection moves straight into
// Uploading — there is no separate user-facing "start" action.
func (s *Session) start(ctx context.Context, file File, transport Transport, hooks Hooks) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancelled {
		// Cancelled between selection and start (reselect race): never run.
		s.state = StateCancelled
		s.mu.Unlock()
		cancel()
		s.preview.Release()
		close(s.done)
		if hooks.OnReset != nil {
			hooks.OnReset(s.Field)
		}
		return
	}
	s.cancel = cancel
	s.state = StateUploading
	s.mu.Unlock()

	go func() {
		defer cancel()

		url, err := transport.Send(ctx, file, func(pct int) {
			s.mu.Lock()
			if s.state == StateUploading {
				if pct > 100 {
					pct = 100
				}
				s.progress = pct
				if pct >= 100 {
					// Bytes are out but the server has not replied yet.
					s.state = StateProcessing
				}
			}
			s.mu.Unlock()
		})

		s.mu.Lock()
		var terminal State
		switch {
		case err == nil:
			terminal = StateDone
			s.url = url
			s.progress = 100
		case errors.Is(err, context.Canceled) || s.cancelled:
			terminal = StateCancelled
		default:
			terminal = StateError
			s.errMsg = err.Error()
		}
		s.state = terminal
		s.mu.Unlock()

		// The preview bytes are no longer needed once the transfer settled.
		s.preview.Release()
		close(s.done)

		// Hooks run without any session/manager lock held — they call back
		// into the owning form.
		switch terminal {
		case StateDone:
			if hooks.OnDone != nil {
				hooks.OnDone(s.Field, url)
			}
		case StateCancelled:
			if hooks.OnReset != nil {
				hooks.OnReset(s.Field)
			}
		case StateError:
			if hooks.OnError != nil {
				hooks.OnError(s.Field, s.Err())
			}
		}
	}()
}
