package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigEnvVar overrides the config file location when set.
const ConfigEnvVar = "KEYSEAL_CONFIG"

// ConfigPath returns the location of the keyseal config file:
// $KEYSEAL_CONFIG if set, otherwise <user config dir>/keyseal/config.toml.
func ConfigPath() (string, error) {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error getting config directory: %w", err)
	}

	return filepath.Join(configDir, "keyseal", "config.toml"), nil
}
