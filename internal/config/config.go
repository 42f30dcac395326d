package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for pdfscrub.
type FileConfig struct {
	Include       *string `yaml:"include,omitempty"`
	Exclude       *string `yaml:"exclude,omitempty"`
	LogsDir       *string `yaml:"logs_dir,omitempty"`
	SortPaths     *bool   `yaml:"sort_paths,omitempty"`
	AtomicReplace *bool   `yaml:"atomic_replace,omitempty"`
	NoProgress    *bool   `yaml:"no_progress,omitempty"`
	NoColor       *bool   `yaml:"no_color,omitempty"`
	Table         *bool   `yaml:"table,omitempty"`
	LogLevel      *string `yaml:"log_level,omitempty"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches dir for a local config file.
// It supports .pdfscrub.yml/.yaml and pdfscrub.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".pdfscrub.yml", ".pdfscrub.yaml", "pdfscrub.yml", "pdfscrub.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "pdfscrub", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
