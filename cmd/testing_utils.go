// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// stubbing prompts and capturing output.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/autoagro/keyseal/internal/configs"
	kerrors "github.com/autoagro/keyseal/internal/errors"
)

// testEnv describes an isolated keyseal environment.
type testEnv struct {
	Dir        string
	ConfigPath string
	Artifact   string
}

// setupTestEnvironment points keyseal at a temp config and a temp artifact,
// disables colors and restores prompt seams and global state on cleanup.
func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		Dir:        dir,
		ConfigPath: filepath.Join(dir, "config", "config.toml"),
		Artifact:   filepath.Join(dir, "plantid_key.enc"),
	}

	t.Setenv(configs.ConfigEnvVar, env.ConfigPath)
	t.Setenv(configs.DefaultPassphraseEnv, "")
	t.Setenv("NO_COLOR", "1")

	config := configs.DefaultConfig()
	config.ArtifactPath = env.Artifact
	config.Iterations = 100_000
	if err := configs.SaveConfig(env.ConfigPath, config); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	originalReadPassphrase := readPassphrase
	originalReadPassphraseFromTTY := readPassphraseFromTTY
	originalReadSecretFromStdin := readSecretFromStdin

	// Prompts fail unless a test stubs them.
	noTerminal := func(string) ([]byte, error) { return nil, kerrors.ErrNotTerminal }
	readPassphrase = noTerminal
	readPassphraseFromTTY = noTerminal
	readSecretFromStdin = func() ([]byte, error) { return nil, fmt.Errorf("no data provided on stdin") }

	ResetGlobalState()
	t.Cleanup(func() {
		readPassphrase = originalReadPassphrase
		readPassphraseFromTTY = originalReadPassphraseFromTTY
		readSecretFromStdin = originalReadSecretFromStdin
		ResetGlobalState()
	})

	return env
}

// stubPrompts answers successive prompts with the given values.
func stubPrompts(t *testing.T, answers ...string) *[]string {
	t.Helper()
	var asked []string
	readPassphrase = func(prompt string) ([]byte, error) {
		asked = append(asked, prompt)
		if len(asked) > len(answers) {
			t.Fatalf("Unexpected prompt %q", prompt)
		}
		return []byte(answers[len(asked)-1]), nil
	}
	readPassphraseFromTTY = readPassphrase
	return &asked
}

// runCLI resets flag state and executes keyseal with args, capturing all output.
func runCLI(args ...string) (string, error) {
	ResetGlobalState()
	if args == nil {
		// nil makes cobra fall back to os.Args.
		args = []string{}
	}
	RootCmd.SetArgs(args)
	return captureOutput(Execute)
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// captureStdout is captureOutput with stderr discarded.
func captureStdout(fn func() error) (string, error) {
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return "", err
	}
	defer devNull.Close()

	return captureOutput(func() error {
		captured := os.Stderr
		os.Stderr = devNull
		defer func() { os.Stderr = captured }()
		return fn()
	})
}
