package quiz

import "time"

// timerTickMsg is sent every second while the quiz is active.
type timerTickMsg time.Time

// spokenMsg reports the end of a text-to-speech request.
type spokenMsg struct {
	err error
}
