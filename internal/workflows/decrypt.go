package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/autoagro/keyseal/internal/audit"
	"github.com/autoagro/keyseal/internal/secrets"
)

// loadArtifact reads the artifact. Tests replace it to observe file access.
var loadArtifact = secrets.LoadArtifact

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// ArtifactPath is the artifact to open.
	ArtifactPath string

	// Passphrase is the passphrase the artifact was sealed with. It is wiped
	// when the workflow returns.
	Passphrase []byte

	// AuditLog is the audit log to append to. Empty disables auditing.
	AuditLog string
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Secret is the recovered API key.
	Secret string

	// ArtifactPath is the file that was opened.
	ArtifactPath string

	// KDF is the key derivation recorded in the artifact.
	KDF secrets.KDFParams

	// Legacy is true if the artifact carried no KDF metadata.
	Legacy bool

	// Format is the token format, secretbox or fernet.
	Format string

	// Duration is how long key derivation and opening took.
	Duration time.Duration

	// AuditErr is set if the audit entry could not be written.
	AuditErr error
}

// Decrypt recovers the API key sealed in opts.ArtifactPath.
//
// Returns ErrArtifactNotFound if the artifact does not exist.
// Returns ErrMalformedArtifact if the artifact cannot be parsed.
// Returns ErrIntegrity on a wrong passphrase or a corrupted token.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	defer secrets.Wipe(opts.Passphrase)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.ArtifactPath == "" {
		return nil, fmt.Errorf("no artifact path given")
	}

	entry := audit.Entry{Operation: audit.OpDecrypt, Path: opts.ArtifactPath}
	fail := func(err error) (*DecryptResult, error) {
		entry.Result, entry.Error = audit.ResultFailed, err.Error()
		_ = audit.Log(opts.AuditLog, entry)
		return nil, err
	}

	// A malformed file fails here, before the KDF runs.
	artifact, err := loadArtifact(opts.ArtifactPath)
	if err != nil {
		return fail(err)
	}
	entry.KDF, entry.Iterations = string(artifact.KDF.Algorithm), artifact.KDF.Iterations

	start := time.Now()
	secret, err := secrets.DecryptArtifact(artifact, opts.Passphrase)
	if err != nil {
		return fail(fmt.Errorf("failed to open %s: %w", opts.ArtifactPath, err))
	}
	duration := time.Since(start)

	entry.Result = audit.ResultOK
	return &DecryptResult{
		Secret:       secret,
		ArtifactPath: opts.ArtifactPath,
		KDF:          artifact.KDF,
		Legacy:       artifact.Legacy,
		Format:       artifact.TokenFormat(),
		Duration:     duration,
		AuditErr:     audit.Log(opts.AuditLog, entry),
	}, nil
}
