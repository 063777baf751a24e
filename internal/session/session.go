package session

// SelectOption records option as the answer to question i. Legal only while
// Active, only for the current question, and only for one of its options.
// The last selection wins.
func (s *Session) SelectOption(i int, option string) error {
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	if i != s.current {
		return ErrNotCurrent
	}
	if !s.questions[i].HasOption(option) {
		return ErrUnknownOption
	}
	s.answers[i] = option
	return nil
}

// Advance moves to the next question once the current one is answered.
func (s *Session) Advance() error {
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	if s.current >= len(s.questions)-1 {
		return ErrLastQuestion
	}
	if s.answers[s.current] == "" {
		return ErrUnanswered
	}
	s.current++
	return nil
}

// Retreat moves to the previous question. Answers are kept.
func (s *Session) Retreat() error {
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	if s.current == 0 {
		return ErrFirstQuestion
	}
	s.current--
	return nil
}

// Submit freezes the answers. Every question must be answered.
func (s *Session) Submit() error {
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	if !s.CanSubmit() {
		return ErrIncomplete
	}
	s.phase = PhaseSubmitted
	return nil
}

// Tick counts one second of quiz time. It does nothing once submitted.
func (s *Session) Tick() {
	if s.phase == PhaseActive {
		s.elapsedSeconds++
	}
}

// CanAdvance reports whether Advance would succeed.
func (s *Session) CanAdvance() bool {
	return s.phase == PhaseActive && s.current < len(s.questions)-1 && s.answers[s.current] != ""
}

// CanRetreat reports whether Retreat would succeed.
func (s *Session) CanRetreat() bool {
	return s.phase == PhaseActive && s.current > 0
}

// CanSubmit reports whether every question has an answer.
func (s *Session) CanSubmit() bool {
	if s.phase != PhaseActive {
		return false
	}
	for _, a := range s.answers {
		if a == "" {
			return false
		}
	}
	return true
}

// IsCorrect reports whether the recorded answer to question i is correct.
func (s *Session) IsCorrect(i int) bool {
	return s.questions[i].IsCorrect(s.answers[i])
}

// Score counts exact matches between answers and correct options.
func (s *Session) Score() int {
	score := 0
	for i := range s.questions {
		if s.IsCorrect(i) {
			score++
		}
	}
	return score
}

// Attempted counts non-empty answers.
func (s *Session) Attempted() int {
	n := 0
	for _, a := range s.answers {
		if a != "" {
			n++
		}
	}
	return n
}

// Percentage returns 100*Score/Len rounded half up.
func (s *Session) Percentage() int {
	return Percentage(s.Score(), len(s.questions))
}

// Percentage returns 100*score/total rounded half up, or 0 when total is 0.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*score + total) / (2 * total)
}
