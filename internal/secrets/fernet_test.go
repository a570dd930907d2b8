package secrets

import (
	"encoding/base64"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/autoagro/keyseal/internal/errors"

	"github.com/fernet/fernet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFernetArtifact writes a two-field file the way the earlier tool did:
// a Fernet token under the urlsafe base64 of the PBKDF2 key, with both the
// salt and the token text base64 encoded into the JSON document.
func writeFernetArtifact(t *testing.T, path, passphrase, secret string, salt []byte) {
	t.Helper()

	key, err := DeriveKey([]byte(passphrase), salt, DefaultKDFParams())
	require.NoError(t, err)

	k, err := fernet.DecodeKey(base64.URLEncoding.EncodeToString(key))
	require.NoError(t, err)

	tok, err := fernet.EncryptAndSign([]byte(secret), k)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(tok), "gAAAAA"))

	writeRaw(t, path, `{"salt": "`+base64.StdEncoding.EncodeToString(salt)+
		`", "token": "`+base64.StdEncoding.EncodeToString(tok)+`"}`)
}

func TestDecryptSecret_FernetArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plantid_key.enc")
	writeFernetArtifact(t, path, "correct-horse", "sk-abc123", testSalt(4))

	a, err := LoadArtifact(path)
	require.NoError(t, err)
	assert.True(t, a.Legacy)
	assert.Equal(t, FormatFernet, a.TokenFormat())

	got, err := DecryptSecret(path, []byte("correct-horse"))
	require.NoError(t, err)
	assert.Equal(t, "sk-abc123", got)
}

func TestDecryptSecret_FernetWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plantid_key.enc")
	writeFernetArtifact(t, path, "correct-horse", "sk-abc123", testSalt(4))

	_, err := DecryptSecret(path, []byte("wrong-horse"))
	assert.ErrorIs(t, err, kerrors.ErrIntegrity)
}

func TestDecryptSecret_FernetTampered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plantid_key.enc")
	salt := testSalt(4)
	writeFernetArtifact(t, path, "correct-horse", "sk-abc123", salt)

	a, err := LoadArtifact(path)
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(string(a.Token))
	require.NoError(t, err)
	raw[len(raw)-40] ^= 0x01
	tampered := base64.URLEncoding.EncodeToString(raw)

	writeRaw(t, path, `{"salt": "`+base64.StdEncoding.EncodeToString(salt)+
		`", "token": "`+base64.StdEncoding.EncodeToString([]byte(tampered))+`"}`)

	_, err = DecryptSecret(path, []byte("correct-horse"))
	assert.ErrorIs(t, err, kerrors.ErrIntegrity)
}

func TestTokenFormat(t *testing.T) {
	fernetText := []byte(base64.URLEncoding.EncodeToString(append([]byte{fernetVersion}, make([]byte, fernetMinSize)...)))

	tests := []struct {
		name     string
		artifact Artifact
		want     string
	}{
		{"legacy fernet", Artifact{Token: fernetText, Legacy: true}, FormatFernet},
		{"legacy binary", Artifact{Token: []byte{tokenVersion, 1, 2, 3}, Legacy: true}, FormatSecretbox},
		{"legacy short fernet", Artifact{Token: []byte("gAAAAA=="), Legacy: true}, FormatSecretbox},
		{"fernet text with metadata", Artifact{Token: fernetText, KDF: fastParams}, FormatSecretbox},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.artifact.TokenFormat())
		})
	}
}

func TestOpenFernet_BadKeyLength(t *testing.T) {
	_, err := openFernet(make([]byte, 16), []byte("gAAAAA"))
	assert.ErrorIs(t, err, kerrors.ErrInvalidKeyLength)
}

func TestInspectArtifact_FernetFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plantid_key.enc")
	writeFernetArtifact(t, path, "correct-horse", "sk-abc123", testSalt(4))

	info, err := InspectArtifact(path)
	require.NoError(t, err)
	assert.True(t, info.Legacy)
	assert.Equal(t, FormatFernet, info.Format)
	assert.Equal(t, DefaultKDFParams(), info.KDF)
}
