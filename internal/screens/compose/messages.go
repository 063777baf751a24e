package compose

import "github.com/abhisek/mcqgen/internal/quizgen"

// generatedMsg carries a generation result tagged with its request number.
type generatedMsg struct {
	seq uint64
	set *quizgen.QuestionSet
	err error
}

// fileLoadedMsg carries the text read from a source file.
type fileLoadedMsg struct {
	path string
	text string
	err  error
}

// ResetMsg clears the form for a fresh start.
type ResetMsg struct{}
