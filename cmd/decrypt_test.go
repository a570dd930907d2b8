package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	kerrors "github.com/autoagro/keyseal/internal/errors"
	"github.com/autoagro/keyseal/internal/secrets"

	"github.com/fernet/fernet-go"
)

var testParams = secrets.KDFParams{Algorithm: secrets.PBKDF2SHA256, Iterations: secrets.MinIterations}

// sealFixture writes an artifact for path sealed with passphrase.
func sealFixture(t *testing.T, path, secret, passphrase string) {
	t.Helper()
	if err := secrets.EncryptSecret(secret, []byte(passphrase), path, testParams); err != nil {
		t.Fatalf("Failed to seal fixture: %v", err)
	}
}

// fernetFixture writes a two-field file holding a Fernet token, as produced
// by the tool keyseal replaces.
func fernetFixture(t *testing.T, path, secret, passphrase string) {
	t.Helper()
	salt := bytes.Repeat([]byte{3}, secrets.SaltSize)
	key, err := secrets.DeriveKey([]byte(passphrase), salt, secrets.DefaultKDFParams())
	if err != nil {
		t.Fatalf("Failed to derive key: %v", err)
	}
	k, err := fernet.DecodeKey(base64.URLEncoding.EncodeToString(key))
	if err != nil {
		t.Fatalf("Failed to decode fernet key: %v", err)
	}
	tok, err := fernet.EncryptAndSign([]byte(secret), k)
	if err != nil {
		t.Fatalf("Failed to seal fernet fixture: %v", err)
	}
	doc := `{"salt": "` + base64.StdEncoding.EncodeToString(salt) +
		`", "token": "` + base64.StdEncoding.EncodeToString(tok) + `"}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
}

// TestDecryptCommand contains integration tests for the `keyseal decrypt` command.
func TestDecryptCommand(t *testing.T) {
	t.Run("DecryptWithEnvPassphrase", testDecryptWithEnvPassphrase)
	t.Run("DecryptRaw", testDecryptRaw)
	t.Run("DecryptWithPrompt", testDecryptWithPrompt)
	t.Run("DecryptWrongPassphrase", testDecryptWrongPassphrase)
	t.Run("DecryptTamperedArtifact", testDecryptTamperedArtifact)
	t.Run("DecryptMissingArtifact", testDecryptMissingArtifact)
	t.Run("DecryptMalformedArtifact", testDecryptMalformedArtifact)
	t.Run("EncryptThenDecrypt", testEncryptThenDecrypt)
	t.Run("DecryptFernetArtifact", testDecryptFernetArtifact)
}

func testDecryptFernetArtifact(t *testing.T) {
	env := setupTestEnvironment(t)
	fernetFixture(t, env.Artifact, "sk-abc123", "correct-horse")
	t.Setenv("PLANT_ID_PASSPHRASE", "correct-horse")

	output, err := runCLI("decrypt")
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v\n%s", err, output)
	}
	if !strings.Contains(output, "sk-abc123") {
		t.Errorf("Expected recovered key in output: %s", output)
	}
	if !strings.Contains(output, "legacy Fernet token") {
		t.Errorf("Expected reseal warning in output: %s", output)
	}

	ResetGlobalState()
	RootCmd.SetArgs([]string{"decrypt", "--raw"})
	stdout, err := captureStdout(Execute)
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v", err)
	}
	if stdout != "sk-abc123\n" {
		t.Errorf("Expected only the key on stdout, got %q", stdout)
	}
}

func testDecryptWithEnvPassphrase(t *testing.T) {
	env := setupTestEnvironment(t)
	sealFixture(t, env.Artifact, "sk-abc123", "correct-horse")
	t.Setenv("PLANT_ID_PASSPHRASE", "correct-horse")

	output, err := runCLI("decrypt")
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v\n%s", err, output)
	}
	if !strings.Contains(output, "API key recovered") || !strings.Contains(output, "sk-abc123") {
		t.Errorf("Expected recovered key in output: %s", output)
	}
}

func testDecryptRaw(t *testing.T) {
	env := setupTestEnvironment(t)
	sealFixture(t, env.Artifact, "sk-abc123", "correct-horse")
	t.Setenv("PLANT_ID_PASSPHRASE", "correct-horse")

	ResetGlobalState()
	RootCmd.SetArgs([]string{"decrypt", "--raw"})
	stdout, err := captureStdout(Execute)
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v", err)
	}
	if stdout != "sk-abc123\n" {
		t.Errorf("Expected only the key on stdout, got %q", stdout)
	}
}

func testDecryptWithPrompt(t *testing.T) {
	env := setupTestEnvironment(t)
	sealFixture(t, env.Artifact, "sk-abc123", "correct-horse")
	asked := stubPrompts(t, "correct-horse")

	output, err := runCLI("decrypt", "--in", env.Artifact)
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v\n%s", err, output)
	}
	if len(*asked) != 1 {
		t.Errorf("Decrypt should prompt once, got %v", *asked)
	}
	if !strings.Contains(output, "sk-abc123") {
		t.Errorf("Expected recovered key in output: %s", output)
	}
}

func testDecryptWrongPassphrase(t *testing.T) {
	env := setupTestEnvironment(t)
	sealFixture(t, env.Artifact, "sk-abc123", "correct-horse")
	t.Setenv("PLANT_ID_PASSPHRASE", "wrong-horse")

	output, err := runCLI("decrypt")
	if !errors.Is(err, kerrors.ErrIntegrity) {
		t.Fatalf("Expected ErrIntegrity, got %v", err)
	}
	if !strings.Contains(output, "Wrong passphrase or corrupted file") {
		t.Errorf("Expected integrity message in output: %s", output)
	}
	if strings.Contains(output, "sk-abc123") {
		t.Errorf("Output must not contain the secret: %s", output)
	}
}

func testDecryptTamperedArtifact(t *testing.T) {
	env := setupTestEnvironment(t)
	sealFixture(t, env.Artifact, "sk-abc123", "correct-horse")
	t.Setenv("PLANT_ID_PASSPHRASE", "correct-horse")

	a, err := secrets.LoadArtifact(env.Artifact)
	if err != nil {
		t.Fatalf("Failed to load fixture: %v", err)
	}
	a.Token[len(a.Token)-1] ^= 0x01
	if err := secrets.SaveArtifact(env.Artifact, a); err != nil {
		t.Fatalf("Failed to save tampered fixture: %v", err)
	}

	output, err := runCLI("decrypt")
	if !errors.Is(err, kerrors.ErrIntegrity) {
		t.Fatalf("Expected ErrIntegrity, got %v", err)
	}
	if !strings.Contains(output, "Wrong passphrase or corrupted file") {
		t.Errorf("Expected integrity message in output: %s", output)
	}
}

func testDecryptMissingArtifact(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv("PLANT_ID_PASSPHRASE", "correct-horse")

	output, err := runCLI("decrypt")
	if !errors.Is(err, kerrors.ErrArtifactNotFound) {
		t.Fatalf("Expected ErrArtifactNotFound, got %v", err)
	}
	if !strings.Contains(output, "No sealed API key found") || !strings.Contains(output, "keyseal encrypt") {
		t.Errorf("Expected guidance in output: %s", output)
	}
}

func testDecryptMalformedArtifact(t *testing.T) {
	env := setupTestEnvironment(t)
	t.Setenv("PLANT_ID_PASSPHRASE", "correct-horse")

	doc, _ := json.Marshal(map[string]string{"salt": "AAAAAAAAAAAAAAAAAAAAAA=="})
	if err := os.WriteFile(env.Artifact, doc, 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	output, err := runCLI("decrypt")
	if !errors.Is(err, kerrors.ErrMalformedArtifact) {
		t.Fatalf("Expected ErrMalformedArtifact, got %v", err)
	}
	if !strings.Contains(output, "is not a valid keyseal artifact") {
		t.Errorf("Expected malformed message in output: %s", output)
	}
}

func testEncryptThenDecrypt(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv("PLANT_ID_PASSPHRASE", "correct-horse")
	stubPrompts(t, "sk-abc123")

	if output, err := runCLI("encrypt"); err != nil {
		t.Fatalf("Encrypt failed: %v\n%s", err, output)
	}

	ResetGlobalState()
	RootCmd.SetArgs([]string{"decrypt", "--raw"})
	stdout, err := captureStdout(Execute)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "sk-abc123" {
		t.Errorf("Expected sk-abc123, got %q", stdout)
	}
}
