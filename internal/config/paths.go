package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// FileName is the config file looked up in the working directory and the
// user config directory.
const FileName = "iconforge.yaml"

// Dir returns the per-user configuration directory:
//
//	windows: %APPDATA%\iconforge
//	darwin:  ~/Library/Application Support/iconforge
//	linux:   $XDG_CONFIG_HOME/iconforge or ~/.config/iconforge
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = home
		}
		return filepath.Join(appData, "iconforge"), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "iconforge"), nil
	case "linux":
		cfg := os.Getenv("XDG_CONFIG_HOME")
		if cfg == "" {
			cfg = filepath.Join(home, ".config")
		}
		return filepath.Join(cfg, "iconforge"), nil
	default:
		return filepath.Join(home, ".iconforge"), nil
	}
}

// Discover picks the config file to use. An explicit path always wins and
// must exist; otherwise ./iconforge.yaml and then the user config directory
// are tried. It returns "" when no file is found, meaning defaults apply.
func Discover(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}
	candidates := []string{FileName}
	if dir, err := Dir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, FileName))
	}
	for _, path := range candidates {
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}
