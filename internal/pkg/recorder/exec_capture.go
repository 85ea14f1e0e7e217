package recorder

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// ExecCapture records by shelling out to an external recorder such as
// arecord or sox and streaming its stdout. It is the capture backend the
// CLI uses on machines with a working ALSA/pulse setup.
type ExecCapture struct {
	Command string
	Args    []string

	mu     sync.Mutex
	cmd    *exec.Cmd
	cancel context.CancelFunc
	done   chan struct{}
}

func NewExecCapture(command string, args ...string) *ExecCapture {
	return &ExecCapture{Command: command, Args: args}
}

func (c *ExecCapture) Start(ctx context.Context, onData func(chunk []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cmd != nil {
		return ErrAlreadyRecording
	}

	runCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(runCtx, c.Command, c.Args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("recorder stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start %s: %w", c.Command, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 32*1024)
		for {
			n, readErr := stdout.Read(buf)
			if n > 0 {
				onData(buf[:n])
			}
			if readErr != nil {
				return
			}
		}
	}()

	c.cmd = cmd
	c.cancel = cancel
	c.done = done
	return nil
}

func (c *ExecCapture) Stop(ctx context.Context) error {
	c.mu.Lock()
	cmd, cancel, done := c.cmd, c.cancel, c.done
	c.cmd, c.cancel, c.done = nil, nil, nil
	c.mu.Unlock()

	if cmd == nil {
		return ErrNotRecording
	}

	cancel()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	// The process exits via the canceled context; Wait reaps it. The kill
	// error is expected and not a recording failure.
	_ = cmd.Wait()
	return nil
}
