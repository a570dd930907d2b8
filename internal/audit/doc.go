// Package audit records a local history of keyseal operations.
//
// Every encrypt and decrypt, successful or not, appends one entry to a
// per-user log next to the config file:
//
//	~/.config/keyseal/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Operation name and artifact path
//   - Result, and the error text for failures
//   - KDF name and iteration count
//
// Passphrases and API keys are never written.
//
// # Failure Handling
//
// Log returns its error so the caller can warn. Commands never fail just
// because audit logging failed.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display. Malformed entries are
// silently skipped to handle partial writes.
package audit
