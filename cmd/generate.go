package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/mcqgen/internal/quizgen"
	"github.com/abhisek/mcqgen/internal/source"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate a quiz and print it (no TUI)",
	Long: `Generate multiple-choice questions from a text or PDF file, or from stdin
when no file (or "-") is given, and print the validated question set.

The default output is JSON, suitable for scripting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("format", "f", "json", "Output format: json or text")
	generateCmd.Flags().Bool("answers", true, "Mark the correct option in text output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	answers, _ := cmd.Flags().GetBool("answers")
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid format %q: must be json or text", format)
	}

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

	out := cmd.OutOrStdout()
	if format == "text" {
		return writeText(out, set, answers)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(set)
}

// generateSet runs one generation with the configured provider.
func generateSet(cmd *cobra.Command, d *deps, text string) (*quizgen.QuestionSet, error) {
	gen, err := quizgen.New(d.provider, d.cfg.Quiz)
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}
	defer gen.Close()

	fmt.Fprintf(cmd.ErrOrStderr(), "Generating %d questions with %s...\n", d.cfg.DefaultCount, d.cfg.LLM.Model())
	set, err := gen.Generate(cmd.Context(), text, d.cfg.DefaultCount)
	if err != nil {
		if msg := quizgen.UserMessage(err); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, err
	}
	return set, nil
}

// readSource loads the file named by args, or stdin when there is none.
func readSource(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		if f, ok := stdin.(*os.File); ok {
			if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
				return "", fmt.Errorf("no input: pass a file or pipe text on stdin")
			}
		}
		return source.ReadAll(stdin)
	}
	text, err := source.Load(args[0])
	if err != nil {
		return "", fmt.Errorf("load %s: %w", args[0], err)
	}
	return text, nil
}

func writeText(w io.Writer, set *quizgen.QuestionSet, answers bool) error {
	var b strings.Builder
	for i, q := range set.Questions() {
		fmt.Fprintf(&b, "── Question %d/%d ──\n", i+1, set.Len())
		fmt.Fprintln(&b, q.Prompt)
		for j, opt := range q.Options {
			mark := " "
			if answers && opt == q.CorrectOption {
				mark = "*"
			}
			fmt.Fprintf(&b, " %s %d) %s\n", mark, j+1, opt)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
