package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestInspectCommand contains integration tests for the `keyseal inspect` command.
func TestInspectCommand(t *testing.T) {
	t.Run("InspectDefaultArtifact", testInspectDefaultArtifact)
	t.Run("InspectGlob", testInspectGlob)
	t.Run("InspectLegacyArtifact", testInspectLegacyArtifact)
	t.Run("InspectInsecurePermissions", testInspectInsecurePermissions)
	t.Run("InspectNoMatches", testInspectNoMatches)
}

func testInspectDefaultArtifact(t *testing.T) {
	env := setupTestEnvironment(t)
	sealFixture(t, env.Artifact, "sk-abc123", "correct-horse")

	output, err := runCLI("inspect")
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v\n%s", err, output)
	}
	for _, want := range []string{"plantid_key.enc", "pbkdf2-sha256", "100000 iterations", "16 bytes"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output: %s", want, output)
		}
	}
	if strings.Contains(output, "sk-abc123") {
		t.Errorf("Inspect must not reveal the secret: %s", output)
	}
}

func testInspectGlob(t *testing.T) {
	env := setupTestEnvironment(t)
	sealFixture(t, filepath.Join(env.Dir, "a", "one.enc"), "sk-1", "p")
	sealFixture(t, filepath.Join(env.Dir, "b", "c", "two.enc"), "sk-2", "p")
	if err := os.WriteFile(filepath.Join(env.Dir, "broken.enc"), []byte("{}"), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	output, err := runCLI("inspect", filepath.Join(env.Dir, "**", "*.enc"))
	if err == nil {
		t.Fatalf("Expected an error for the broken artifact")
	}
	for _, want := range []string{"one.enc", "two.enc", "is not a valid keyseal artifact"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output: %s", want, output)
		}
	}
}

func testInspectLegacyArtifact(t *testing.T) {
	env := setupTestEnvironment(t)
	fernetFixture(t, env.Artifact, "sk-abc123", "correct-horse")

	output, err := runCLI("inspect")
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v\n%s", err, output)
	}
	if !strings.Contains(output, "legacy fernet token") || !strings.Contains(output, "390000 iterations") {
		t.Errorf("Expected legacy defaults in output: %s", output)
	}
}

func testInspectInsecurePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	env := setupTestEnvironment(t)
	sealFixture(t, env.Artifact, "sk-abc123", "correct-horse")
	if err := os.Chmod(env.Artifact, 0o644); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}

	output, err := runCLI("inspect")
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v\n%s", err, output)
	}
	if !strings.Contains(output, "chmod 600") {
		t.Errorf("Expected permission warning in output: %s", output)
	}
}

func testInspectNoMatches(t *testing.T) {
	env := setupTestEnvironment(t)

	output, err := runCLI("inspect", filepath.Join(env.Dir, "*.enc"))
	if err == nil {
		t.Fatalf("Expected an error when nothing matches")
	}
	if !strings.Contains(output, "No sealed API key found") {
		t.Errorf("Expected not-found message in output: %s", output)
	}
}
