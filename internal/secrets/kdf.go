package secrets

import (
	"crypto/sha256"
	"fmt"

	kerrors "github.com/autoagro/keyseal/internal/errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// KDF identifies a password-based key derivation function.
type KDF string

const (
	// PBKDF2SHA256 is PBKDF2 with HMAC-SHA256. Artifacts without KDF metadata use it.
	PBKDF2SHA256 KDF = "pbkdf2-sha256"

	// Argon2ID is the memory-hard Argon2id variant.
	Argon2ID KDF = "argon2id"
)

const (
	// SaltSize is the length of the random salt stored in every artifact.
	SaltSize = 16

	// KeySize is the length of the derived key, as required by secretbox.
	KeySize = 32

	// DefaultIterations is the PBKDF2 work factor used when none is given.
	DefaultIterations = 390_000

	// MinIterations is the lowest PBKDF2 work factor accepted.
	MinIterations = 100_000

	// MaxIterations caps PBKDF2 so an artifact cannot stall decryption for hours.
	MaxIterations = 10_000_000
)

// Argon2id defaults and bounds. Memory is in KiB.
const (
	DefaultArgon2Time    = 3
	DefaultArgon2Memory  = 64 * 1024
	DefaultArgon2Threads = 4

	MinArgon2Memory = 8 * 1024

	MaxArgon2Time    = 64
	MaxArgon2Memory  = 1024 * 1024 // 1 GiB
	MaxArgon2Threads = 64
)

// KDFParams selects a key derivation function and its work factor.
// Iterations is the PBKDF2 iteration count or the Argon2id time cost.
// Memory and Threads only apply to Argon2id.
type KDFParams struct {
	Algorithm  KDF
	Iterations uint32
	Memory     uint32
	Threads    uint8
}

// DefaultKDFParams returns the PBKDF2 parameters used for artifacts that
// carry no KDF metadata.
func DefaultKDFParams() KDFParams {
	return KDFParams{Algorithm: PBKDF2SHA256, Iterations: DefaultIterations}
}

// DefaultArgon2Params returns the Argon2id parameters used when argon2id is
// selected without an explicit work factor.
func DefaultArgon2Params() KDFParams {
	return KDFParams{
		Algorithm:  Argon2ID,
		Iterations: DefaultArgon2Time,
		Memory:     DefaultArgon2Memory,
		Threads:    DefaultArgon2Threads,
	}
}

// ParseKDF maps a KDF name to its identifier. The empty string selects PBKDF2.
func ParseKDF(name string) (KDF, error) {
	switch KDF(name) {
	case "", PBKDF2SHA256:
		return PBKDF2SHA256, nil
	case Argon2ID:
		return Argon2ID, nil
	default:
		return "", fmt.Errorf("%w: %q", kerrors.ErrUnsupportedKDF, name)
	}
}

// WithDefaults fills zero-valued fields with the defaults of the selected KDF.
func (p KDFParams) WithDefaults() KDFParams {
	switch p.Algorithm {
	case "", PBKDF2SHA256:
		p.Algorithm = PBKDF2SHA256
		if p.Iterations == 0 {
			p.Iterations = DefaultIterations
		}
		p.Memory, p.Threads = 0, 0
	case Argon2ID:
		if p.Iterations == 0 {
			p.Iterations = DefaultArgon2Time
		}
		if p.Memory == 0 {
			p.Memory = DefaultArgon2Memory
		}
		if p.Threads == 0 {
			p.Threads = DefaultArgon2Threads
		}
	}
	return p
}

// Validate reports whether the parameters are usable for derivation. Both
// floors and ceilings are enforced, since parameters read from an artifact
// are untrusted input.
func (p KDFParams) Validate() error {
	switch p.Algorithm {
	case PBKDF2SHA256:
		if p.Iterations < MinIterations || p.Iterations > MaxIterations {
			return fmt.Errorf("%w: pbkdf2 iterations must be between %d and %d, got %d",
				kerrors.ErrInvalidKDFParams, MinIterations, MaxIterations, p.Iterations)
		}
	case Argon2ID:
		if p.Iterations < 1 || p.Iterations > MaxArgon2Time {
			return fmt.Errorf("%w: argon2id time cost must be between 1 and %d, got %d",
				kerrors.ErrInvalidKDFParams, MaxArgon2Time, p.Iterations)
		}
		if p.Memory < MinArgon2Memory || p.Memory > MaxArgon2Memory {
			return fmt.Errorf("%w: argon2id memory must be between %d and %d KiB, got %d",
				kerrors.ErrInvalidKDFParams, MinArgon2Memory, MaxArgon2Memory, p.Memory)
		}
		if p.Threads < 1 || p.Threads > MaxArgon2Threads {
			return fmt.Errorf("%w: argon2id threads must be between 1 and %d, got %d",
				kerrors.ErrInvalidKDFParams, MaxArgon2Threads, p.Threads)
		}
	default:
		return fmt.Errorf("%w: %q", kerrors.ErrUnsupportedKDF, string(p.Algorithm))
	}
	return nil
}

// String renders the parameters for logs and inspect output.
func (p KDFParams) String() string {
	if p.Algorithm == Argon2ID {
		return fmt.Sprintf("%s (t=%d, m=%dKiB, p=%d)", p.Algorithm, p.Iterations, p.Memory, p.Threads)
	}
	return fmt.Sprintf("%s (%d iterations)", p.Algorithm, p.Iterations)
}

// NewSalt reads SaltSize bytes from the secure random source.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if err := readRandom(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey stretches passphrase and salt into a KeySize key. The result is
// deterministic for equal inputs. Callers own the returned key and should
// Wipe it once the operation is done.
func DeriveKey(passphrase, salt []byte, params KDFParams) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", kerrors.ErrInvalidKDFParams, SaltSize, len(salt))
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	switch params.Algorithm {
	case Argon2ID:
		return argon2.IDKey(passphrase, salt, params.Iterations, params.Memory, params.Threads, KeySize), nil
	default:
		return pbkdf2.Key(passphrase, salt, int(params.Iterations), KeySize, sha256.New), nil
	}
}
