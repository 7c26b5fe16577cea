// Package config loads optional interpreter settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/ucci-lang/ucci/eval"
	"github.com/ucci-lang/ucci/lexer"
	"gopkg.in/yaml.v3"
)

// RelPath is where the config file is looked up under the XDG config dirs.
const RelPath = "ucci/config.yaml"

type Config struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
	Timing  bool   `yaml:"timing"`
	// Globals are defined before the program runs.
	Globals map[string]any `yaml:"globals"`
	// Reserved names are declared without a value; scripts must assign them
	// before reading them.
	Reserved []string `yaml:"reserved"`
}

func Default() Config {
	return Config{
		Prompt:  "> ",
		History: filepath.Join(xdg.DataHome, "ucci", "history"),
	}
}

// Find returns the path of the user's config file, if one exists.
func Find() (string, bool) {
	path, err := xdg.SearchConfigFile(RelPath)
	if err != nil {
		return "", false
	}
	return path, true
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	bytes, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := Parse(bytes, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(s []byte, cfg *Config) error {
	if err := yaml.Unmarshal(s, cfg); err != nil {
		return err
	}
	return cfg.validate()
}

var ErrInvalidName = errors.New("invalid global name")

func (cfg Config) validate() error {
	var err error
	check := func(name string) {
		if !validName(name) {
			err = errors.Join(err, fmt.Errorf("%w: %q", ErrInvalidName, name))
		}
	}
	for name := range cfg.Globals {
		check(name)
	}
	for _, name := range cfg.Reserved {
		check(name)
	}
	return err
}

func validName(name string) bool {
	if name == "" || lexer.IsKeyword(name) {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// Apply seeds the interpreter's globals.
func (cfg Config) Apply(in *eval.Interpreter) error {
	for name, raw := range cfg.Globals {
		v, err := eval.FromGo(raw)
		if err != nil {
			return fmt.Errorf("global %s: %w", name, err)
		}
		in.Define(name, v)
	}
	for _, name := range cfg.Reserved {
		in.Declare(name)
	}
	return nil
}
