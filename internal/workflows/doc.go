// Package workflows provides high-level orchestration for keyseal commands.
//
// Workflows sit between the cmd/ package and the secrets core. Each workflow
// handles a single command's business logic, independent of CLI concerns like
// flag parsing, spinners, and output formatting.
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Encrypt: Seals an API key into an artifact file
//   - Decrypt: Recovers the API key from an artifact file
//   - Inspect: Reports artifact metadata without deriving a key
//   - ResolvePassphrase: Reads the passphrase from the environment or a prompt
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Use
// errors.Is() to check for specific error conditions:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if errors.Is(err, kerrors.ErrIntegrity) {
//	    // Wrong passphrase or corrupted file
//	}
package workflows
