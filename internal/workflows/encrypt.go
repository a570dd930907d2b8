package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/autoagro/keyseal/internal/audit"
	kerrors "github.com/autoagro/keyseal/internal/errors"
	"github.com/autoagro/keyseal/internal/secrets"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// Secret is the API key to seal. Surrounding whitespace is trimmed.
	Secret string

	// Passphrase protects the artifact. It is wiped when the workflow returns.
	Passphrase []byte

	// OutputPath is where the artifact is written.
	OutputPath string

	// KDF selects the key derivation function. The zero value means the default.
	KDF secrets.KDFParams

	// AuditLog is the audit log to append to. Empty disables auditing.
	AuditLog string
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// ArtifactPath is the file that was written.
	ArtifactPath string

	// KDF is the key derivation actually used.
	KDF secrets.KDFParams

	// Overwritten is true if an artifact already existed at ArtifactPath.
	Overwritten bool

	// Duration is how long key derivation and sealing took.
	Duration time.Duration

	// AuditErr is set if the audit entry could not be written.
	AuditErr error
}

// Encrypt seals opts.Secret under opts.Passphrase and writes the artifact.
//
// Returns ErrEmptySecret if the secret is blank.
// Returns ErrEmptyPassphrase if the passphrase is empty.
// Returns ErrInvalidKDFParams or ErrUnsupportedKDF for bad KDF settings.
// Returns ErrRandomness if the salt or nonce cannot be generated.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	defer secrets.Wipe(opts.Passphrase)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	secret := strings.TrimSpace(opts.Secret)
	if secret == "" {
		return nil, kerrors.ErrEmptySecret
	}
	if len(opts.Passphrase) == 0 {
		return nil, kerrors.ErrEmptyPassphrase
	}
	if opts.OutputPath == "" {
		return nil, fmt.Errorf("no output path given")
	}

	params := opts.KDF.WithDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	overwritten := false
	if _, err := os.Stat(opts.OutputPath); err == nil {
		overwritten = true
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to check %s: %w", opts.OutputPath, err)
	}

	entry := audit.Entry{
		Operation:  audit.OpEncrypt,
		Path:       opts.OutputPath,
		KDF:        string(params.Algorithm),
		Iterations: params.Iterations,
	}

	start := time.Now()
	if err := secrets.EncryptSecret(secret, opts.Passphrase, opts.OutputPath, params); err != nil {
		entry.Result, entry.Error = audit.ResultFailed, err.Error()
		_ = audit.Log(opts.AuditLog, entry)
		return nil, err
	}
	duration := time.Since(start)

	entry.Result = audit.ResultOK
	return &EncryptResult{
		ArtifactPath: opts.OutputPath,
		KDF:          params,
		Overwritten:  overwritten,
		Duration:     duration,
		AuditErr:     audit.Log(opts.AuditLog, entry),
	}, nil
}
