// Package speech reads question text aloud through a system command.
// Speaking is best-effort: callers ignore failures beyond showing them.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// ErrUnavailable is returned when no speech command is installed.
var ErrUnavailable = errors.New("text-to-speech is not available on this system")

// Speaker reads text aloud.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Nop is a Speaker for systems without text-to-speech.
type Nop struct{}

func (Nop) Speak(context.Context, string) error { return ErrUnavailable }

// CommandSpeaker runs an external command with the text as its last
// argument. Starting a new utterance stops the previous one.
type CommandSpeaker struct {
	name string
	args []string

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
}

// NewCommandSpeaker returns a speaker that runs argv followed by the text.
func NewCommandSpeaker(argv []string) (*CommandSpeaker, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.New("speech command is empty")
	}
	return &CommandSpeaker{name: argv[0], args: append([]string(nil), argv[1:]...)}, nil
}

// Command returns the program the speaker runs.
func (c *CommandSpeaker) Command() string { return c.name }

// Speak blocks until the text is spoken, ctx is done, or a newer call
// replaces this one. A replaced utterance returns nil.
func (c *CommandSpeaker) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.seq == seq {
			c.cancel = nil
		}
		c.mu.Unlock()
		cancel()
	}()

	args := append(append([]string(nil), c.args...), text)
	cmd := exec.CommandContext(ctx, c.name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "no stderr"
		}
		return fmt.Errorf("%s: %w (%s)", c.name, err, msg)
	}
	return nil
}

// Stop interrupts the utterance in progress, if any.
func (c *CommandSpeaker) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Detect picks a speaker: the configured command when set, otherwise say
// on macOS or espeak/espeak-ng/spd-say elsewhere. It falls back to Nop.
func Detect(configured []string) Speaker {
	return detect(configured, runtime.GOOS, exec.LookPath)
}

func detect(configured []string, goos string, lookPath func(string) (string, error)) Speaker {
	if len(configured) > 0 {
		if s, err := NewCommandSpeaker(configured); err == nil {
			return s
		}
		return Nop{}
	}

	candidates := [][]string{{"espeak-ng"}, {"espeak"}, {"spd-say", "--wait"}}
	if goos == "darwin" {
		candidates = [][]string{{"say"}}
	}
	for _, argv := range candidates {
		if _, err := lookPath(argv[0]); err == nil {
			s, _ := NewCommandSpeaker(argv)
			return s
		}
	}
	return Nop{}
}

// QuestionText renders a question and its numbered options as one
// utterance.
func QuestionText(prompt string, options []string) string {
	parts := []string{strings.TrimSpace(prompt)}
	for i, o := range options {
		parts = append(parts, fmt.Sprintf("Option %d: %s.", i+1, o))
	}
	return strings.Join(parts, " ")
}
