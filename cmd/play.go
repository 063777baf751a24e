package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/mcqgen/internal/session"
	"github.com/abhisek/mcqgen/internal/ui/theme"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Take a quiz in plain line mode (no TUI)",
	Long: `Generate a quiz from a text or PDF file and answer it line by line.

Type an option number to answer, "b" to go back, or "q" to quit. After the
last answer the score is shown and you can ask for explanations.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	text, err := readSource(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	set, err := generateSet(cmd, d, text)
	if err != nil {
		return err
	}
	s, err := sess.New(set)
	if err != nil {
		return err
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	if !answerLoop(s, in, out, time.Now) {
		fmt.Fprintln(out, "\nQuiz abandoned.")
		return nil
	}

	printSummary(out, sess.BuildSummary(s))

	ex, err := sess.NewExplainer(d.provider, s, d.cfg.Explain)
	if err != nil {
		return err
	}
	explainLoop(cmd, ex, s.Len(), in, out)
	return nil
}

// answerLoop drives s until it is submitted. It returns false if the user
// quits or input ends first.
func answerLoop(s *sess.Session, in *bufio.Scanner, out io.Writer, now func() time.Time) bool {
	start := now()
	for !s.Submitted() {
		i := s.Current()
		q := s.Question(i)
		fmt.Fprintf(out, "── Question %d/%d ──\n%s\n", i+1, s.Len(), q.Prompt)
		for j, opt := range q.Options {
			mark := " "
			if opt == s.Answer(i) {
				mark = "●"
			}
			fmt.Fprintf(out, " %s %d) %s\n", mark, j+1, opt)
		}
		fmt.Fprint(out, "\nYour answer: ")

		if !in.Scan() {
			fmt.Fprintln(out)
			return false
		}
		for range int(now().Sub(start)/time.Second) - s.ElapsedSeconds() {
			s.Tick()
		}

		input := strings.ToLower(strings.TrimSpace(in.Text()))
		switch input {
		case "q":
			return false
		case "b":
			if err := s.Retreat(); err != nil {
				lipgloss.Fprintf(out, "%s\n\n", theme.Incorrect.Render(err.Error()))
			}
			fmt.Fprintln(out)
			continue
		case "":
			fmt.Fprintln(out)
			continue
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(q.Options) {
			lipgloss.Fprintf(out, "%s\n\n", theme.Incorrect.Render(
				fmt.Sprintf("Enter a number from 1 to %d.", len(q.Options))))
			continue
		}
		if err := s.SelectOption(i, q.Options[n-1]); err != nil {
			lipgloss.Fprintf(out, "%s\n\n", theme.Incorrect.Render(err.Error()))
			continue
		}
		fmt.Fprintln(out)

		switch {
		case s.CanAdvance():
			_ = s.Advance()
		case s.CanSubmit():
			_ = s.Submit()
		}
	}
	return true
}

func printSummary(out io.Writer, sum *sess.Summary) {
	lipgloss.Fprintf(out, "%s\n%s\n%s\n\n",
		theme.Title.Render(fmt.Sprintf("You scored %d out of %d (%d%%)", sum.Score, sum.Total, sum.Percentage)),
		sum.Feedback,
		theme.Muted.Render("Time "+sess.FormatClock(sum.Duration)))

	for _, item := range sum.Items {
		mark := theme.Correct.Render("✓")
		detail := ""
		if !item.Correct {
			mark = theme.Incorrect.Render("✗")
			detail = fmt.Sprintf(" (you chose %q, correct: %q)", item.Chosen, item.CorrectOption)
		}
		lipgloss.Fprintf(out, "%s %d. %s%s\n", mark, item.Index+1, item.Prompt, detail)
	}
	fmt.Fprintln(out)
}

func explainLoop(cmd *cobra.Command, ex *sess.Explainer, n int, in *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintf(out, "Explain which question? (1-%d, Enter to finish): ", n)
		if !in.Scan() {
			fmt.Fprintln(out)
			return
		}
		input := strings.TrimSpace(in.Text())
		if input == "" {
			return
		}
		i, err := strconv.Atoi(input)
		if err != nil || i < 1 || i > n {
			fmt.Fprintf(out, "Enter a number from 1 to %d.\n", n)
			continue
		}
		fmt.Fprintf(out, "\n%s\n\n", ex.Explain(cmd.Context(), i-1))
	}
}
