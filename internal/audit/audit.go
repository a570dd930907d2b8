package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileName is the audit log's name inside the keyseal config directory.
const FileName = "audit.jsonl"

// Operation names.
const (
	OpEncrypt = "encrypt"
	OpDecrypt = "decrypt"
)

// Results.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Entry represents a single audit log entry. It never carries key material.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"`
	Path      string `json:"path"`
	Result    string `json:"result"`

	// Optional fields depending on operation.
	KDF        string `json:"kdf,omitempty"`
	Iterations uint32 `json:"iterations,omitempty"`
	Error      string `json:"error,omitempty"` // For failed operations.
}

// PathFor returns the audit log location next to the config file at configPath.
func PathFor(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), FileName)
}

// Log appends an entry to the audit log at logPath.
// An empty logPath disables logging. Failures are returned so callers can
// warn, but operations should not fail just because audit logging failed.
func Log(logPath string, entry Entry) error {
	if logPath == "" {
		return nil
	}

	// Set timestamp if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	// Single write so concurrent appenders do not interleave within a line.
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// ReadEntries reads all entries from the audit log at logPath.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(logPath string) ([]Entry, error) {
	data, err := os.ReadFile(logPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			// Skip partial writes.
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}

// Tail returns the last n entries, or all of them if n <= 0.
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
