package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

// DefaultMaxDiffChars bounds the diff sent to a provider when neither the
// flag nor the config file sets a limit.
const DefaultMaxDiffChars = 20000

// FileConfig is the on-disk configuration. Unset values leave the built-in
// defaults in place.
type FileConfig struct {
	Provider string            `toml:"provider,omitempty"`
	Models   map[string]string `toml:"models,omitempty"` // default model per catalog-backed provider

	CommitAgent string `toml:"commit_agent,omitempty"`
	TagAgent    string `toml:"tag_agent,omitempty"`

	// IgnoredFiles extends the built-in ignore list.
	IgnoredFiles []string `toml:"ignored_files,omitempty"`

	Terse        *bool `toml:"terse,omitempty"`
	Emoji        *bool `toml:"emoji,omitempty"`
	MaxDiffChars *int  `toml:"max_diff_chars,omitempty"`
}

// Env holds GITSCRIBE_* overrides.
type Env struct {
	ConfigPath     string `env:"GITSCRIBE_CONFIG"`
	Provider       string `env:"GITSCRIBE_PROVIDER"`
	Model          string `env:"GITSCRIBE_MODEL"`
	NonInteractive bool   `env:"GITSCRIBE_NON_INTERACTIVE"`
}

func LoadEnv(ctx context.Context) (Env, error) {
	var env Env
	if err := envconfig.Process(ctx, &env); err != nil {
		return env, fmt.Errorf("process environment: %w", err)
	}
	return env, nil
}

// DefaultPath returns ~/.config/gitscribe/config.toml, honouring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gitscribe", "config.toml"), nil
}

// Load reads path. A missing file yields an empty config.
func Load(path string) (FileConfig, error) {
	var cfg FileConfig
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(cfg FileConfig, path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func ResolveString(flagVal, envVal, fileVal, defVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if envVal != "" {
		return envVal
	}
	if fileVal != "" {
		return fileVal
	}
	return defVal
}

func ResolveInt(flagVal int, flagSet bool, fileVal *int, defVal int) int {
	if flagSet {
		return flagVal
	}
	if fileVal != nil {
		return *fileVal
	}
	return defVal
}

func ResolveBool(flagVal bool, flagSet bool, fileVal *bool, defVal bool) bool {
	if flagSet {
		return flagVal
	}
	if fileVal != nil {
		return *fileVal
	}
	return defVal
}
