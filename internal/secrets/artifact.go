package secrets

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	kerrors "github.com/autoagro/keyseal/internal/errors"
)

// ArtifactVersion is the current artifact format version.
const ArtifactVersion = 1

// ArtifactExtension is the conventional file suffix for artifacts.
const ArtifactExtension = ".enc"

// b64 decodes strictly so every byte sequence has exactly one textual form.
var b64 = base64.StdEncoding.Strict()

// Artifact is the persisted unit: the salt, the sealed token and the KDF
// parameters needed to re-derive the key.
type Artifact struct {
	Salt  []byte
	Token []byte
	KDF   KDFParams

	// Legacy is set when the file carried no KDF metadata and the default
	// PBKDF2 parameters were assumed.
	Legacy bool
}

// artifactDocument is the on-disk JSON layout. salt and token are required;
// the remaining fields are optional metadata.
type artifactDocument struct {
	Salt       string `json:"salt"`
	Token      string `json:"token"`
	Version    int    `json:"version,omitempty"`
	KDF        string `json:"kdf,omitempty"`
	Iterations uint32 `json:"iterations,omitempty"`
	Memory     uint32 `json:"memory,omitempty"`
	Threads    uint8  `json:"threads,omitempty"`
}

// SaveArtifact writes a to path, replacing any existing file. The document is
// written to a temporary file in the same directory and renamed into place,
// so concurrent writers never leave an interleaved file behind.
func SaveArtifact(path string, a *Artifact) error {
	if len(a.Salt) != SaltSize {
		return fmt.Errorf("%w: salt must be %d bytes, got %d", kerrors.ErrInvalidKDFParams, SaltSize, len(a.Salt))
	}
	if len(a.Token) == 0 {
		return fmt.Errorf("%w: empty token", kerrors.ErrMalformedArtifact)
	}
	params := a.KDF.WithDefaults()
	if err := params.Validate(); err != nil {
		return err
	}

	doc := artifactDocument{
		Salt:       b64.EncodeToString(a.Salt),
		Token:      b64.EncodeToString(a.Token),
		Version:    ArtifactVersion,
		KDF:        string(params.Algorithm),
		Iterations: params.Iterations,
		Memory:     params.Memory,
		Threads:    params.Threads,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}
	data = append(data, '\n')

	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// CreateTemp opens the file with mode 0600.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write to %s: %w", path, err)
	}
	return nil
}

// LoadArtifact reads and validates the artifact at path. A missing file
// yields ErrArtifactNotFound; anything that is not a well-formed artifact
// yields ErrMalformedArtifact.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrArtifactNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact at %s: %w", path, err)
	}

	a, err := ParseArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// ParseArtifact decodes an artifact document. Field order does not matter
// and unknown fields are ignored.
func ParseArtifact(data []byte) (*Artifact, error) {
	var doc artifactDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrMalformedArtifact, err)
	}

	if doc.Salt == "" {
		return nil, fmt.Errorf("%w: missing salt", kerrors.ErrMalformedArtifact)
	}
	if doc.Token == "" {
		return nil, fmt.Errorf("%w: missing token", kerrors.ErrMalformedArtifact)
	}
	if doc.Version > ArtifactVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", kerrors.ErrMalformedArtifact, doc.Version)
	}

	salt, err := b64.DecodeString(doc.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: salt is not valid base64: %v", kerrors.ErrMalformedArtifact, err)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", kerrors.ErrMalformedArtifact, SaltSize, len(salt))
	}
	token, err := b64.DecodeString(doc.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: token is not valid base64: %v", kerrors.ErrMalformedArtifact, err)
	}

	a := &Artifact{Salt: salt, Token: token}
	if doc.KDF == "" && doc.Iterations == 0 {
		a.KDF = DefaultKDFParams()
		a.Legacy = true
		return a, nil
	}

	alg, err := ParseKDF(doc.KDF)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrMalformedArtifact, err)
	}
	a.KDF = KDFParams{
		Algorithm:  alg,
		Iterations: doc.Iterations,
		Memory:     doc.Memory,
		Threads:    doc.Threads,
	}.WithDefaults()
	if err := a.KDF.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrMalformedArtifact, err)
	}
	return a, nil
}
