// Package config loads the application configuration: built-in defaults,
// overlaid by an optional YAML file, overlaid by FIILGEN_* environment
// variables. Cobra flags sit on top of all three.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"fiilgen/internal/examplegen"
	"fiilgen/internal/grammar"
	"fiilgen/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	Paths   Paths   `yaml:"paths"`
	Run     Run     `yaml:"run"`
	LLM     LLM     `yaml:"llm"`
	Retry   Retry   `yaml:"retry"`
	Logging Logging `yaml:"logging"`
}

// Paths locates the inputs and outputs.
type Paths struct {
	VerbsCSV       string `yaml:"verbs_csv"`
	OutputDir      string `yaml:"output_dir"`
	IndexDir       string `yaml:"index_dir"`
	Exclusions     string `yaml:"exclusions"`
	EventLog       string `yaml:"event_log"`
	PromptTemplate string `yaml:"prompt_template"`
}

// Run selects what to generate.
type Run struct {
	Level          string  `yaml:"level"`
	TopN           int     `yaml:"top_n_verbs"`
	StartFrom      int     `yaml:"start_from"`
	Batch          bool    `yaml:"batch"`
	SkipExisting   bool    `yaml:"skip_existing"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	BatchMaxTokens int     `yaml:"batch_max_tokens"`
}

// LLM configures the provider gateway.
type LLM struct {
	Provider          string      `yaml:"provider"`
	RequestsPerMinute int         `yaml:"requests_per_minute"`
	TimeoutSeconds    int         `yaml:"timeout_seconds"`
	Anthropic         ProviderCfg `yaml:"anthropic"`
	OpenAI            ProviderCfg `yaml:"openai"`
	Gemini            ProviderCfg `yaml:"gemini"`
	OpenRouter        ProviderCfg `yaml:"openrouter"`
}

// ProviderCfg is one backend's credentials and rotation list.
type ProviderCfg struct {
	APIKey  string   `yaml:"api_key"`
	Models  []string `yaml:"models"`
	BaseURL string   `yaml:"base_url"`
}

// Retry holds the two independent retry budgets.
type Retry struct {
	ValidationAttempts int `yaml:"validation_attempts"`
	TransportAttempts  int `yaml:"transport_attempts"`
	InitialWaitSeconds int `yaml:"initial_wait_seconds"`
	MaxWaitSeconds     int `yaml:"max_wait_seconds"`
}

// Logging selects the log level.
type Logging struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	gen := examplegen.DefaultConfig()
	gw := llm.DefaultConfig()
	return Config{
		Paths: Paths{
			VerbsCSV:  "data/input/verbs.csv",
			OutputDir: "data/output/training_examples_for_verbs",
			IndexDir:  "data/output",
			EventLog:  "data/fiilgen.db",
		},
		Run: Run{
			Level:          string(grammar.B2),
			TopN:           10,
			StartFrom:      1,
			SkipExisting:   true,
			Temperature:    gen.Temperature,
			MaxTokens:      gen.MaxTokens,
			BatchMaxTokens: gen.BatchMaxTokens,
		},
		LLM: LLM{
			Provider:          gw.Provider,
			RequestsPerMinute: gw.RequestsPerMinute,
			TimeoutSeconds:    int(gw.Timeout / time.Second),
			Anthropic:         ProviderCfg{Models: gw.Anthropic.Models},
			OpenAI:            ProviderCfg{Models: gw.OpenAI.Models},
			Gemini:            ProviderCfg{Models: gw.Gemini.Models},
			OpenRouter:        ProviderCfg{Models: gw.OpenRouter.Models},
		},
		Retry: Retry{
			ValidationAttempts: gen.ValidationAttempts,
			TransportAttempts:  gw.Retry.TransportAttempts,
			InitialWaitSeconds: int(gw.Retry.InitialWait / time.Second),
			MaxWaitSeconds:     int(gw.Retry.MaxWait / time.Second),
		},
		Logging: Logging{Level: "info"},
	}
}

// Load builds the effective configuration. An empty path skips the file
// layer; a named file that does not exist is an error, since the operator
// asked for it explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays FIILGEN_* variables for paths and run selection; the
// gateway's own variables are handled by llm.Config.ApplyEnv.
func (c *Config) applyEnv() {
	if v := os.Getenv("FIILGEN_VERBS_CSV"); v != "" {
		c.Paths.VerbsCSV = v
	}
	if v := os.Getenv("FIILGEN_OUTPUT_DIR"); v != "" {
		c.Paths.OutputDir = v
	}
	if v := os.Getenv("FIILGEN_EVENT_LOG"); v != "" {
		c.Paths.EventLog = v
	}
	if v := os.Getenv("FIILGEN_LEVEL"); v != "" {
		c.Run.Level = v
	}
}

// Validate rejects values the pipeline cannot run with.
func (c Config) Validate() error {
	if !grammar.Level(c.Run.Level).Valid() {
		return fmt.Errorf("unknown language level %q (want A1, A2, B1, or B2)", c.Run.Level)
	}
	if c.Run.TopN < 1 {
		return fmt.Errorf("top_n_verbs must be at least 1, got %d", c.Run.TopN)
	}
	if c.Run.StartFrom < 1 {
		return fmt.Errorf("start_from must be at least 1, got %d", c.Run.StartFrom)
	}
	if c.Retry.ValidationAttempts < 1 {
		return fmt.Errorf("validation_attempts must be at least 1, got %d", c.Retry.ValidationAttempts)
	}
	if c.Retry.TransportAttempts < 1 {
		return fmt.Errorf("transport_attempts must be at least 1, got %d", c.Retry.TransportAttempts)
	}
	return nil
}

// Level returns the requested maximum language level.
func (c Config) Level() grammar.Level { return grammar.Level(c.Run.Level) }

// LLMConfig maps to the gateway configuration and overlays the gateway's
// environment variables. When no API key is configured anywhere, the
// standard provider key variables are probed in priority order.
func (c Config) LLMConfig() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.LLM.Provider
	out.RequestsPerMinute = c.LLM.RequestsPerMinute
	if c.LLM.TimeoutSeconds > 0 {
		out.Timeout = time.Duration(c.LLM.TimeoutSeconds) * time.Second
	}
	out.Anthropic = llm.AnthropicConfig{APIKey: c.LLM.Anthropic.APIKey, Models: c.LLM.Anthropic.Models}
	out.OpenAI = llm.OpenAIConfig{APIKey: c.LLM.OpenAI.APIKey, Models: c.LLM.OpenAI.Models, BaseURL: c.LLM.OpenAI.BaseURL}
	out.Gemini = llm.GeminiConfig{APIKey: c.LLM.Gemini.APIKey, Models: c.LLM.Gemini.Models}
	out.OpenRouter = llm.OpenRouterConfig{APIKey: c.LLM.OpenRouter.APIKey, Models: c.LLM.OpenRouter.Models, BaseURL: c.LLM.OpenRouter.BaseURL}
	out.Retry = llm.RetryConfig{
		TransportAttempts: c.Retry.TransportAttempts,
		InitialWait:       time.Duration(c.Retry.InitialWaitSeconds) * time.Second,
		MaxWait:           time.Duration(c.Retry.MaxWaitSeconds) * time.Second,
	}

	out.ApplyEnv()
	if out.Validate() != nil {
		out.DiscoverKey()
	}
	return out
}

// GenConfig maps to the orchestrator configuration.
func (c Config) GenConfig() examplegen.Config {
	out := examplegen.DefaultConfig()
	out.ValidationAttempts = c.Retry.ValidationAttempts
	out.Temperature = c.Run.Temperature
	if c.Run.MaxTokens > 0 {
		out.MaxTokens = c.Run.MaxTokens
	}
	if c.Run.BatchMaxTokens > 0 {
		out.BatchMaxTokens = c.Run.BatchMaxTokens
	}
	out.TemplatePath = c.Paths.PromptTemplate
	return out
}
