package secrets

import (
	"fmt"
	"os"
	"time"

	kerrors "github.com/autoagro/keyseal/internal/errors"
)

// EncryptSecret seals secret under a key derived from passphrase and a fresh
// salt, then writes the artifact to path, overwriting any existing file.
// A zero params selects DefaultKDFParams.
func EncryptSecret(secret string, passphrase []byte, path string, params KDFParams) error {
	if len(passphrase) == 0 {
		return kerrors.ErrEmptyPassphrase
	}
	params = params.WithDefaults()
	if err := params.Validate(); err != nil {
		return err
	}

	salt, err := NewSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := DeriveKey(passphrase, salt, params)
	if err != nil {
		return fmt.Errorf("failed to derive key: %w", err)
	}
	defer Wipe(key)

	plaintext := []byte(secret)
	defer Wipe(plaintext)

	token, err := Seal(key, plaintext)
	if err != nil {
		return fmt.Errorf("failed to seal secret: %w", err)
	}

	return SaveArtifact(path, &Artifact{Salt: salt, Token: token, KDF: params})
}

// DecryptSecret loads the artifact at path, re-derives the key with the
// recorded KDF parameters and returns the secret. A wrong passphrase and a
// corrupted token both yield ErrIntegrity.
func DecryptSecret(path string, passphrase []byte) (string, error) {
	a, err := LoadArtifact(path)
	if err != nil {
		return "", err
	}

	secret, err := DecryptArtifact(a, passphrase)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	return secret, nil
}

// DecryptArtifact re-derives the key for an already loaded artifact and
// opens its token. Two-field files written by the earlier tool hold Fernet
// tokens and are opened as such.
func DecryptArtifact(a *Artifact, passphrase []byte) (string, error) {
	key, err := DeriveKey(passphrase, a.Salt, a.KDF)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}
	defer Wipe(key)

	plaintext, err := a.openToken(key)
	if err != nil {
		return "", err
	}
	defer Wipe(plaintext)

	return string(plaintext), nil
}

// ArtifactInfo describes an artifact without decrypting it.
type ArtifactInfo struct {
	Path      string
	KDF       KDFParams
	Legacy    bool
	Format    string
	SaltSize  int
	TokenSize int
	Mode      os.FileMode
	ModTime   time.Time
}

// InspectArtifact loads the metadata of the artifact at path. No key is derived.
func InspectArtifact(path string) (*ArtifactInfo, error) {
	a, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return &ArtifactInfo{
		Path:      path,
		KDF:       a.KDF,
		Legacy:    a.Legacy,
		Format:    a.TokenFormat(),
		SaltSize:  len(a.Salt),
		TokenSize: len(a.Token),
		Mode:      stat.Mode().Perm(),
		ModTime:   stat.ModTime(),
	}, nil
}
