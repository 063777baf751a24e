// Package config assembles mcqgen's runtime configuration from defaults,
// an optional YAML file, the environment and command-line flags, in that
// order of precedence (later wins).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/mcqgen/internal/llm"
	"github.com/abhisek/mcqgen/internal/quizgen"
	"github.com/abhisek/mcqgen/internal/session"
	"gopkg.in/yaml.v3"
)

// DefaultQuestionCount is the count pre-filled in the compose form.
const DefaultQuestionCount = 5

// Config is the resolved runtime configuration.
type Config struct {
	LLM     llm.Config
	Quiz    quizgen.Config
	Explain session.ExplainConfig

	// DefaultCount is the question count offered before the user edits it.
	DefaultCount int

	// SpeechCommand overrides text-to-speech detection. The text to speak
	// is appended as the final argument.
	SpeechCommand []string

	// Path is the file the config was loaded from, or "" when none was read.
	Path string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM:          llm.DefaultConfig(),
		Quiz:         quizgen.DefaultConfig(),
		Explain:      session.DefaultExplainConfig(),
		DefaultCount: DefaultQuestionCount,
	}
}

// Overrides carries values set by command-line flags.
type Overrides struct {
	Provider string
	Model    string
	Count    int
}

// DefaultPath returns $XDG_CONFIG_HOME/mcqgen/config.yaml, falling back to
// ~/.config/mcqgen/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mcqgen", "config.yaml"), nil
}

// Load resolves the configuration. An empty path means the default
// location, which may be absent; an explicit path must exist.
func Load(path string, o Overrides) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.merge(data); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		cfg.Path = path
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	cfg.LLM = llm.ApplyEnv(cfg.LLM)
	cfg.apply(o)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) apply(o Overrides) {
	if o.Provider != "" {
		c.LLM.Provider = o.Provider
	}
	if o.Model != "" {
		c.LLM.SetModel(o.Model)
	}
	if o.Count > 0 {
		c.DefaultCount = o.Count
	}
}

// Validate checks values that cannot be caught while decoding. It does not
// check credentials; the provider factory does that when a provider is
// actually built.
func (c Config) Validate() error {
	if err := c.Quiz.Validate(); err != nil {
		return fmt.Errorf("quiz: %w", err)
	}
	if c.DefaultCount < 1 || c.DefaultCount > c.Quiz.MaxQuestions {
		return fmt.Errorf("default question count must be within [1, %d], got %d", c.Quiz.MaxQuestions, c.DefaultCount)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm timeout must not be negative")
	}
	return nil
}

// fileConfig mirrors the YAML layout. Unknown keys fail the decode and
// credential-like keys are rejected before it.
type fileConfig struct {
	LLM struct {
		Provider    string `yaml:"provider"`
		Timeout     string `yaml:"timeout"`
		MaxAttempts int    `yaml:"max_attempts"`

		OpenRouter struct {
			Model   string `yaml:"model"`
			BaseURL string `yaml:"base_url"`
			Referer string `yaml:"referer"`
			Title   string `yaml:"title"`
		} `yaml:"openrouter"`
		OpenAI struct {
			Model   string `yaml:"model"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"openai"`
		Anthropic struct {
			Model string `yaml:"model"`
		} `yaml:"anthropic"`
		Gemini struct {
			Model string `yaml:"model"`
		} `yaml:"gemini"`
	} `yaml:"llm"`

	Quiz struct {
		Temperature      *float64 `yaml:"temperature"`
		MaxTokens        int      `yaml:"max_tokens"`
		OptionCount      int      `yaml:"option_count"`
		DefaultQuestions int      `yaml:"default_questions"`
		MaxQuestions     int      `yaml:"max_questions"`
		PromptTemplate   string   `yaml:"prompt_template"`
	} `yaml:"quiz"`

	Explain struct {
		Temperature    *float64 `yaml:"temperature"`
		MaxTokens      int      `yaml:"max_tokens"`
		PromptTemplate string   `yaml:"prompt_template"`
	} `yaml:"explain"`

	Speech struct {
		Command []string `yaml:"command"`
	} `yaml:"speech"`
}

func (c *Config) merge(data []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return err
	}
	if key := findSecretKey(&root); key != "" {
		return fmt.Errorf("%q is not allowed in the config file; set credentials through the environment", key)
	}

	var f fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}

	setString(&c.LLM.Provider, f.LLM.Provider)
	if f.LLM.Timeout != "" {
		d, err := time.ParseDuration(f.LLM.Timeout)
		if err != nil {
			return fmt.Errorf("llm.timeout: %w", err)
		}
		c.LLM.Timeout = d
	}
	setInt(&c.LLM.Retry.MaxAttempts, f.LLM.MaxAttempts)
	setString(&c.LLM.OpenRouter.Model, f.LLM.OpenRouter.Model)
	setString(&c.LLM.OpenRouter.BaseURL, f.LLM.OpenRouter.BaseURL)
	setString(&c.LLM.OpenRouter.Referer, f.LLM.OpenRouter.Referer)
	setString(&c.LLM.OpenRouter.Title, f.LLM.OpenRouter.Title)
	setString(&c.LLM.OpenAI.Model, f.LLM.OpenAI.Model)
	setString(&c.LLM.OpenAI.BaseURL, f.LLM.OpenAI.BaseURL)
	setString(&c.LLM.Anthropic.Model, f.LLM.Anthropic.Model)
	setString(&c.LLM.Gemini.Model, f.LLM.Gemini.Model)

	if f.Quiz.Temperature != nil {
		c.Quiz.Temperature = *f.Quiz.Temperature
	}
	setInt(&c.Quiz.MaxTokens, f.Quiz.MaxTokens)
	setInt(&c.Quiz.OptionCount, f.Quiz.OptionCount)
	setInt(&c.DefaultCount, f.Quiz.DefaultQuestions)
	setInt(&c.Quiz.MaxQuestions, f.Quiz.MaxQuestions)
	setString(&c.Quiz.PromptTemplate, f.Quiz.PromptTemplate)

	if f.Explain.Temperature != nil {
		c.Explain.Temperature = *f.Explain.Temperature
	}
	setInt(&c.Explain.MaxTokens, f.Explain.MaxTokens)
	setString(&c.Explain.PromptTemplate, f.Explain.PromptTemplate)

	if len(f.Speech.Command) > 0 {
		c.SpeechCommand = f.Speech.Command
	}
	return nil
}

// findSecretKey returns the first mapping key that looks like a credential.
func findSecretKey(n *yaml.Node) string {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := strings.ToLower(n.Content[i].Value)
			if strings.Contains(k, "api_key") || strings.Contains(k, "apikey") || k == "token" || k == "secret" {
				return n.Content[i].Value
			}
		}
	}
	for _, child := range n.Content {
		if key := findSecretKey(child); key != "" {
			return key
		}
	}
	return ""
}
