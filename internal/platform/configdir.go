package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfigDir overrides the directory holding settings and logs.
const EnvConfigDir = "RELSTAMP_CONFIG_DIR"

// ConfigDir returns the application's configuration directory.
func ConfigDir(appName string) (string, error) {
	if override := os.Getenv(EnvConfigDir); override != "" {
		return override, nil
	}

	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, appName), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return filepath.Join(homeDir, ".config", appName), nil
}
