package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCommandSpeaker_AppendsText(t *testing.T) {
	out := filepath.Join(t.TempDir(), "spoken.txt")
	s, err := NewCommandSpeaker([]string{"sh", "-c", `printf '%s' "$0" > "` + out + `"`})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Speak(context.Background(), "  What is 2+2?  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "What is 2+2?" {
		t.Errorf("spoken %q", got)
	}
}

func TestCommandSpeaker_Failure(t *testing.T) {
	s, _ := NewCommandSpeaker([]string{"sh", "-c", "echo broken >&2; exit 3"})
	err := s.Speak(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "broken"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q missing %q", err, want)
	}
}

func TestCommandSpeaker_StopInterrupts(t *testing.T) {
	s, _ := NewCommandSpeaker([]string{"sh", "-c", "exec sleep 10"})

	done := make(chan error, 1)
	go func() { done <- s.Speak(context.Background(), "long text") }()

	// Give the command a moment to start.
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("interrupted speech should not fail: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Speak did not return after Stop")
	}
}

func TestCommandSpeaker_EmptyText(t *testing.T) {
	s, _ := NewCommandSpeaker([]string{"definitely-not-a-real-binary"})
	if err := s.Speak(context.Background(), "   "); err != nil {
		t.Fatalf("blank text should be a no-op: %v", err)
	}
}

func TestNewCommandSpeaker_Empty(t *testing.T) {
	if _, err := NewCommandSpeaker(nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestDetect(t *testing.T) {
	found := func(names ...string) func(string) (string, error) {
		return func(name string) (string, error) {
			for _, n := range names {
				if n == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		}
	}

	tests := []struct {
		name       string
		configured []string
		goos       string
		lookPath   func(string) (string, error)
		want       string
	}{
		{"configured wins", []string{"festival", "--tts"}, "linux", found("espeak"), "festival"},
		{"mac say", nil, "darwin", found("say"), "say"},
		{"espeak-ng first", nil, "linux", found("espeak", "espeak-ng"), "espeak-ng"},
		{"spd-say fallback", nil, "linux", found("spd-say"), "spd-say"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := detect(tt.configured, tt.goos, tt.lookPath).(*CommandSpeaker)
			if !ok {
				t.Fatalf("expected a CommandSpeaker")
			}
			if s.Command() != tt.want {
				t.Errorf("command = %q, want %q", s.Command(), tt.want)
			}
		})
	}

	if _, ok := detect(nil, "linux", found()).(Nop); !ok {
		t.Error("expected Nop when nothing is installed")
	}
	if err := (Nop{}).Speak(context.Background(), "x"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Nop.Speak = %v", err)
	}
}

func TestQuestionText(t *testing.T) {
	got := QuestionText("Capital of France?", []string{"Paris", "Rome"})
	want := "Capital of France? Option 1: Paris. Option 2: Rome."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
