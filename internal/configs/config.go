package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	kerrors "github.com/autoagro/keyseal/internal/errors"
	"github.com/autoagro/keyseal/internal/secrets"
	"github.com/autoagro/keyseal/internal/utils"
)

const (
	// DefaultArtifactPath is where the sealed API key lives unless configured otherwise.
	DefaultArtifactPath = "plantid_key.enc"

	// DefaultPassphraseEnv is the environment variable consulted for the passphrase.
	DefaultPassphraseEnv = "PLANT_ID_PASSPHRASE"
)

// Config holds the user's keyseal defaults. Command-line flags override it.
type Config struct {
	ArtifactPath  string `toml:"artifact_path"`
	PassphraseEnv string `toml:"passphrase_env"`
	KDF           string `toml:"kdf"`
	Iterations    uint32 `toml:"iterations"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		ArtifactPath:  DefaultArtifactPath,
		PassphraseEnv: DefaultPassphraseEnv,
		KDF:           string(secrets.PBKDF2SHA256),
	}
}

// LoadConfig loads the config file at path on top of the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig validates and writes the config to path.
func SaveConfig(path string, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.ArtifactPath == "" {
		return fmt.Errorf("%w: artifact_path cannot be empty", kerrors.ErrInvalidConfig)
	}
	if !utils.IsValidEnvName(c.PassphraseEnv) {
		return fmt.Errorf("%w: passphrase_env %q is not a valid environment variable name", kerrors.ErrInvalidConfig, c.PassphraseEnv)
	}

	params, err := c.KDFParams()
	if err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrInvalidConfig, err)
	}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrInvalidConfig, err)
	}

	return nil
}

// KDFParams returns the derivation parameters new artifacts are sealed with.
func (c *Config) KDFParams() (secrets.KDFParams, error) {
	alg, err := secrets.ParseKDF(c.KDF)
	if err != nil {
		return secrets.KDFParams{}, err
	}
	return secrets.KDFParams{Algorithm: alg, Iterations: c.Iterations}.WithDefaults(), nil
}

// Keys returns the settable config keys in sorted order.
func Keys() []string {
	return []string{"artifact_path", "iterations", "kdf", "passphrase_env"}
}

// Get returns the value of key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "artifact_path":
		return c.ArtifactPath, nil
	case "passphrase_env":
		return c.PassphraseEnv, nil
	case "kdf":
		return c.KDF, nil
	case "iterations":
		return strconv.FormatUint(uint64(c.Iterations), 10), nil
	default:
		return "", fmt.Errorf("%w: unknown key %q", kerrors.ErrInvalidConfig, key)
	}
}

// Set parses value into key and validates the result. The config is left
// unchanged on error.
func (c *Config) Set(key, value string) error {
	updated := *c

	switch key {
	case "artifact_path":
		updated.ArtifactPath = value
	case "passphrase_env":
		updated.PassphraseEnv = value
	case "kdf":
		updated.KDF = value
	case "iterations":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: iterations must be a non-negative integer: %v", kerrors.ErrInvalidConfig, err)
		}
		updated.Iterations = uint32(n)
	default:
		return fmt.Errorf("%w: unknown key %q", kerrors.ErrInvalidConfig, key)
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	*c = updated
	return nil
}
