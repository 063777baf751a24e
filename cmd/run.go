package cmd

import (
	"fmt"

	"github.com/abhisek/mcqgen/internal/app"
	"github.com/abhisek/mcqgen/internal/quizgen"
	"github.com/abhisek/mcqgen/internal/speech"
	"github.com/spf13/cobra"
)

// runApp loads configuration, opens the store, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	noSplash, _ := cmd.Flags().GetBool("no-splash")
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	gen, err := quizgen.New(d.provider, d.cfg.Quiz)
	if err != nil {
		return fmt.Errorf("create generator: %w", err)
	}
	defer gen.Close()

	return app.Run(app.Options{
		Generator:    gen,
		Provider:     d.provider,
		Explain:      d.cfg.Explain,
		Speaker:      speech.Detect(d.cfg.SpeechCommand),
		DefaultCount: d.cfg.DefaultCount,
		Model:        d.cfg.LLM.Model(),
		Splash:       !noSplash,
	})
}
