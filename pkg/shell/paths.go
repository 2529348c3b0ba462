package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// rcConfig is the interactive-mode configuration, loaded from the rc file.
type rcConfig struct {
	Prompt string `yaml:"prompt"`
	DB     string `yaml:"db"`
}

// rcPath returns the default path of the rc file.
func rcPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rill", "rc.yaml"), nil
}

// defaultDBPath returns the default path of the history database, creating
// its directory if needed.
func defaultDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dbDir := filepath.Join(dir, "rill")
	if err := os.MkdirAll(dbDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dbDir, "rill.db"), nil
}

// loadRC parses the rc file at path into cfg. A missing file is not an
// error; fields absent from the file keep their current values.
func loadRC(path string, cfg *rcConfig) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return nil
}
