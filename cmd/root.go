package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/mcqgen/internal/config"
	"github.com/abhisek/mcqgen/internal/llm"
	"github.com/abhisek/mcqgen/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mcqgen",
	Short: "Generate multiple-choice quizzes from your own text",
	Long: "mcqgen turns study material (typed, pasted, or loaded from a text or PDF file) " +
		"into a multiple-choice quiz using an LLM, then lets you take it in the terminal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MCQGEN_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/mcqgen/config.yaml)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: openrouter, openai, anthropic, gemini or mock")
	rootCmd.PersistentFlags().String("model", "", "Model for the selected provider")
	rootCmd.PersistentFlags().Int("count", 0, "Number of questions to generate")

	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MCQGEN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadConfig resolves the config file, environment and flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	var o config.Overrides
	o.Provider, _ = cmd.Flags().GetString("provider")
	o.Model, _ = cmd.Flags().GetString("model")
	o.Count, _ = cmd.Flags().GetInt("count")

	cfg, err := config.Load(path, o)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openStore opens the request log database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// deps bundles what the quiz commands need.
type deps struct {
	cfg      config.Config
	store    *store.Store
	provider llm.Provider
}

// openDeps loads config, opens the store and builds the provider.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	provider, err := newProvider(cmd.Context(), cfg, st.EventRepo())
	if err != nil {
		st.Close()
		return nil, err
	}
	return &deps{cfg: cfg, store: st, provider: provider}, nil
}

func (d *deps) Close() {
	d.store.Close()
}

// newProvider builds the configured provider with request logging.
func newProvider(ctx context.Context, cfg config.Config, repo store.EventRepo) (llm.Provider, error) {
	p, err := llm.NewProvider(ctx, cfg.LLM, repo)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w\n\n"+
			"Set MCQGEN_%s_API_KEY (or the provider's standard key variable) in your environment", err, envName(cfg.LLM.Provider))
	}
	return p, nil
}

func envName(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI"
	case "anthropic":
		return "ANTHROPIC"
	case "gemini":
		return "GEMINI"
	}
	return "OPENROUTER"
}
