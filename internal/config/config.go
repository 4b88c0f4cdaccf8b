package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// defaultPath is consulted when no --config flag is given; a missing file is
// not an error.
const defaultPath = "mocktrial.toml"

type Config struct {
	APIKey                string `toml:"api_key"`
	Model                 string `toml:"model"`
	TranscribeModel       string `toml:"transcribe_model"`
	Language              string `toml:"language"`
	Bind                  string `toml:"bind"`
	DefaultRounds         int    `toml:"default_rounds"`
	VerdictTimeoutSeconds int    `toml:"verdict_timeout_seconds"`
	HintSeed              int64  `toml:"hint_seed"`
}

// VerdictTimeout returns the configured verdict deadline as a duration.
func (c *Config) VerdictTimeout() time.Duration {
	return time.Duration(c.VerdictTimeoutSeconds) * time.Second
}

// Load resolves configuration in increasing precedence: built-in defaults,
// TOML file, environment. A `.env` file in the working directory is folded
// into the environment first. OPENAI_API_KEY is required: the verdict and
// transcription collaborators cannot run without it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Model:                 "gpt-4",
		TranscribeModel:       "whisper-1",
		Language:              "en",
		Bind:                  ":3000",
		DefaultRounds:         2,
		VerdictTimeoutSeconds: 60,
		HintSeed:              time.Now().UnixNano(),
	}

	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	if err := loadEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("config: OPENAI_API_KEY is required")
	}
	if cfg.DefaultRounds < 1 {
		return nil, fmt.Errorf("config: DefaultRounds must be >= 1, got %d", cfg.DefaultRounds)
	}
	if cfg.VerdictTimeoutSeconds < 1 {
		return nil, fmt.Errorf("config: VerdictTimeoutSeconds must be >= 1, got %d", cfg.VerdictTimeoutSeconds)
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	required := path != ""
	if path == "" {
		path = defaultPath
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("MOCKTRIAL_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("MOCKTRIAL_TRANSCRIBE_MODEL"); v != "" {
		cfg.TranscribeModel = v
	}
	if v := os.Getenv("MOCKTRIAL_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("MOCKTRIAL_BIND"); v != "" {
		cfg.Bind = v
	}

	rounds, err := envInt("MOCKTRIAL_ROUNDS", cfg.DefaultRounds)
	if err != nil {
		return err
	}
	cfg.DefaultRounds = rounds

	timeout, err := envInt("MOCKTRIAL_VERDICT_TIMEOUT", cfg.VerdictTimeoutSeconds)
	if err != nil {
		return err
	}
	cfg.VerdictTimeoutSeconds = timeout
	return nil
}

func envInt(key string, defaultVal int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s value %q: %w", key, s, err)
	}
	return v, nil
}
