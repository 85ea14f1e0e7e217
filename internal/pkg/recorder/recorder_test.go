package recorder

import (
	"context"
	"errors"
	"testing"
)

type fakeCapture struct {
	onData   func(chunk []byte)
	startErr error
	started  bool
	stopped  bool
}

func (f *fakeCapture) Start(_ context.Context, onData func(chunk []byte)) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	f.onData = onData
	return nil
}

func (f *fakeCapture) Stop(context.Context) error {
	f.stopped = true
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	cap := &fakeCapture{}
	s := NewSession(cap)
	ctx := context.Background()

	if got := s.State(); got != StateIdle {
		t.Fatalf("initial state = %v, want idle", got)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := s.State(); got != StateRecording {
		t.Fatalf("state after Start = %v, want recording", got)
	}

	cap.onData([]byte("abc"))
	cap.onData([]byte("def"))

	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if !cap.stopped {
		t.Fatal("capture was not stopped")
	}

	clip, err := s.Clip()
	if err != nil {
		t.Fatalf("Clip: %v", err)
	}
	if string(clip) != "abcdef" {
		t.Fatalf("clip = %q, want %q", clip, "abcdef")
	}
}

func TestSessionRejectsInvalidTransitions(t *testing.T) {
	s := NewSession(&fakeCapture{})
	ctx := context.Background()

	if err := s.Stop(ctx); !errors.Is(err, ErrNotRecording) {
		t.Fatalf("Stop while idle = %v, want ErrNotRecording", err)
	}
	if _, err := s.Clip(); !errors.Is(err, ErrNoClip) {
		t.Fatalf("Clip while idle = %v, want ErrNoClip", err)
	}

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(ctx); !errors.Is(err, ErrAlreadyRecording) {
		t.Fatalf("second Start = %v, want ErrAlreadyRecording", err)
	}
}

func TestSessionCaptureDeniedStaysIdle(t *testing.T) {
	s := NewSession(&fakeCapture{startErr: errors.New("permission denied")})

	err := s.Start(context.Background())
	if !errors.Is(err, ErrCaptureDenied) {
		t.Fatalf("Start = %v, want ErrCaptureDenied", err)
	}
	if got := s.State(); got != StateIdle {
		t.Fatalf("state after denied Start = %v, want idle", got)
	}
}

func TestSessionResetDiscardsClip(t *testing.T) {
	cap := &fakeCapture{}
	s := NewSession(cap)
	ctx := context.Background()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cap.onData([]byte("voice"))
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	s.Reset()
	if got := s.State(); got != StateIdle {
		t.Fatalf("state after Reset = %v, want idle", got)
	}
	if _, err := s.Clip(); !errors.Is(err, ErrNoClip) {
		t.Fatalf("Clip after Reset = %v, want ErrNoClip", err)
	}
}

func TestSessionEmptyRecordingHasNoClip(t *testing.T) {
	cap := &fakeCapture{}
	s := NewSession(cap)
	ctx := context.Background()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if _, err := s.Clip(); !errors.Is(err, ErrNoClip) {
		t.Fatalf("Clip of empty recording = %v, want ErrNoClip", err)
	}
}
