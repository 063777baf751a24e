package session

import (
	"fmt"
	"time"
)

// ReviewItem is one question as shown on the results screen.
type ReviewItem struct {
	Index         int
	Prompt        string
	Options       []string
	Chosen        string
	CorrectOption string
	Correct       bool
}

// Summary holds the data displayed on the results screen.
type Summary struct {
	Duration   time.Duration
	Total      int
	Score      int
	Percentage int
	Attempted  int
	Feedback   string
	Items      []ReviewItem
}

// BuildSummary creates a Summary from the session's current state.
func BuildSummary(s *Session) *Summary {
	items := make([]ReviewItem, s.Len())
	for i := range items {
		q := s.Question(i)
		items[i] = ReviewItem{
			Index:         i,
			Prompt:        q.Prompt,
			Options:       q.Options,
			Chosen:        s.Answer(i),
			CorrectOption: q.CorrectOption,
			Correct:       s.IsCorrect(i),
		}
	}

	pct := s.Percentage()
	return &Summary{
		Duration:   s.Elapsed(),
		Total:      s.Len(),
		Score:      s.Score(),
		Percentage: pct,
		Attempted:  s.Attempted(),
		Feedback:   Feedback(pct),
		Items:      items,
	}
}

// Feedback returns the encouragement line for a percentage.
func Feedback(percentage int) string {
	switch {
	case percentage >= 80:
		return "Excellent work!"
	case percentage >= 60:
		return "Good job!"
	default:
		return "Keep practicing!"
	}
}

// FormatClock renders d as m:ss.
func FormatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
