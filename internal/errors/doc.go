// Package errors provides typed error values for keyseal.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Artifact errors: the sealed file is missing or unreadable (ErrArtifactNotFound, ErrMalformedArtifact)
//   - Crypto errors: derivation or authenticated decryption failed (ErrIntegrity, ErrRandomness)
//   - Input errors: the user supplied unusable input (ErrEmptyPassphrase, ErrPassphraseMismatch)
//   - Configuration errors: ErrInvalidConfig
//
// ErrIntegrity deliberately covers both a wrong passphrase and a corrupted
// token. Callers must not try to tell the two apart.
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading %s: %w", path, kerrors.ErrArtifactNotFound)
//
// Handle errors in the CLI layer:
//
//	secret, err := secrets.DecryptSecret(path, passphrase)
//	if errors.Is(err, kerrors.ErrIntegrity) {
//	    // Ask for the passphrase again
//	}
package errors
