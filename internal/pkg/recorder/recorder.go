package recorder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
	ErrNoClip           = errors.New("no completed recording")
	ErrCaptureDenied    = errors.New("audio capture unavailable")
)

type State int

const (
	StateIdle State = iota
	StateRecording
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Capture is the platform capability a Session records through. Start streams
// data chunks into onData until Stop; a Start failure means the device was
// denied or missing.
type Capture interface {
	Start(ctx context.Context, onData func(chunk []byte)) error
	Stop(ctx context.Context) error
}

// Session is the idle → recording → stopped machine around one voice note.
// Undefined transitions (start while recording, stop while idle) are
// rejected; Reset discards the assembled clip and returns to idle.
type Session struct {
	mu      sync.Mutex
	state   State
	capture Capture
	chunks  [][]byte
}

func NewSession(capture Capture) *Session {
	return &Session{state: StateIdle, capture: capture}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrAlreadyRecording
	}
	if s.capture == nil {
		s.mu.Unlock()
		return ErrCaptureDenied
	}
	s.chunks = nil
	s.mu.Unlock()

	if err := s.capture.Start(ctx, s.appendChunk); err != nil {
		// Denied capture leaves the session idle so it can be retried.
		return fmt.Errorf("%w: %v", ErrCaptureDenied, err)
	}

	s.mu.Lock()
	s.state = StateRecording
	s.mu.Unlock()
	return nil
}

func (s *Session) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return ErrNotRecording
	}
	s.mu.Unlock()

	if err := s.capture.Stop(ctx); err != nil {
		return fmt.Errorf("stop capture: %w", err)
	}

	s.mu.Lock()
	s.state = StateStopped
	s.mu.Unlock()
	return nil
}

// Clip assembles the recorded chunks into one playable blob. Only valid in
// the stopped state; an empty recording is not a completed one.
func (s *Session) Clip() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStopped {
		return nil, ErrNoClip
	}

	var buf bytes.Buffer
	for _, chunk := range s.chunks {
		buf.Write(chunk)
	}
	if buf.Len() == 0 {
		return nil, ErrNoClip
	}

	return buf.Bytes(), nil
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.chunks = nil
}

func (s *Session) appendChunk(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	copied := make([]byte, len(chunk))
	copy(copied, chunk)

	s.mu.Lock()
	s.chunks = append(s.chunks, copied)
	s.mu.Unlock()
}
