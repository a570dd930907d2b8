package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// maxStdinSize bounds how much ReadStdin accepts. API keys are tiny.
const maxStdinSize = 1 << 20

// ReadStdin reads all piped content from stdin with surrounding whitespace trimmed.
// Returns an error if stdin is a terminal (no piped data), is empty, or cannot be read.
func ReadStdin() ([]byte, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat stdin: %w", err)
	}

	// If ModeCharDevice is set, stdin is connected to a terminal.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no data provided on stdin (hint: pipe your API key to this command)")
	}

	return ReadAllTrimmed(os.Stdin)
}

// ReadAllTrimmed reads r up to maxStdinSize bytes and trims surrounding whitespace.
func ReadAllTrimmed(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxStdinSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(data) > maxStdinSize {
		return nil, fmt.Errorf("stdin input exceeds %d bytes", maxStdinSize)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("stdin is empty")
	}

	return data, nil
}
