// Package config resolves where quickmove looks for destinations and how it
// scans them.
//
// Sources, lowest precedence first: built-in defaults, the TOML file,
// a .env file next to it, the process environment, command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	fsutil "github.com/kk-code-lab/quickmove/internal/fs"
	"github.com/pelletier/go-toml/v2"
)

const (
	appDirName = "quickmove"
	fileName   = "config.toml"
	envName    = ".env"

	EnvRoot = "QUICKMOVE_ROOT"
)

// Overridable for tests.
var (
	userHomeDir   = os.UserHomeDir
	userConfigDir = os.UserConfigDir
	lookupEnv     = os.LookupEnv
)

type Config struct {
	Root             string   `toml:"root"`
	MaxDepth         int      `toml:"max_depth"`
	ShowHidden       bool     `toml:"show_hidden"`
	SkipNames        []string `toml:"skip_names"`
	ClipboardCommand string   `toml:"clipboard_command"`
}

// DefaultPath returns $XDG_CONFIG_HOME/quickmove/config.toml (or the
// platform equivalent).
func DefaultPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, appDirName, fileName), nil
}

// Load reads a TOML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("invalid max_depth %d in '%s': must be >= 0", cfg.MaxDepth, path)
	}

	return &cfg, nil
}

// Resolve builds the effective configuration. An empty path means the
// default location, where a missing file is fine; an explicit path must exist.
// The root is always filled in and made absolute.
func Resolve(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := Load(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, os.ErrNotExist):
		cfg = &Config{}
	default:
		return nil, err
	}

	dotenv, err := readDotenv(filepath.Join(filepath.Dir(path), envName))
	if err != nil {
		return nil, err
	}
	if root, ok := lookupEnv(EnvRoot); ok && strings.TrimSpace(root) != "" {
		cfg.Root = root
	} else if root := dotenv[EnvRoot]; strings.TrimSpace(root) != "" {
		cfg.Root = root
	}

	if err := cfg.SetRoot(cfg.Root); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetRoot replaces the root, expanding "~" and falling back to DefaultRoot
// when root is blank.
func (c *Config) SetRoot(root string) error {
	root = strings.TrimSpace(root)
	if root == "" {
		def, err := DefaultRoot()
		if err != nil {
			return err
		}
		c.Root = def
		return nil
	}

	expanded, err := expandHome(root)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return fmt.Errorf("failed to resolve root '%s': %w", root, err)
	}
	c.Root = abs
	return nil
}

// DefaultRoot is ~/Sync when that folder exists, otherwise the home
// directory. Symlinks are resolved.
func DefaultRoot() (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}

	root := home
	if info, err := os.Stat(filepath.Join(home, "Sync")); err == nil && info.IsDir() {
		root = filepath.Join(home, "Sync")
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return root, nil
}

// ScanOptions converts the configuration into folder scan options.
// Configured skip names extend the defaults.
func (c *Config) ScanOptions() fsutil.ScanOptions {
	opts := fsutil.DefaultScanOptions()
	opts.MaxDepth = c.MaxDepth
	opts.ShowHidden = c.ShowHidden
	for _, name := range c.SkipNames {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(opts.SkipNames, name) {
			continue
		}
		opts.SkipNames = append(opts.SkipNames, name)
	}
	return opts
}

func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read env file '%s': %w", path, err)
	}
	return values, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand '%s': %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}
