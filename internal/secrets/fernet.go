package secrets

import (
	"encoding/base64"
	"fmt"

	kerrors "github.com/autoagro/keyseal/internal/errors"

	"github.com/fernet/fernet-go"
)

// Token formats reported by Artifact.TokenFormat.
const (
	FormatSecretbox = "secretbox"
	FormatFernet    = "fernet"
)

const (
	fernetVersion byte = 0x80

	// fernetMinSize is version, timestamp, IV and HMAC around one AES block.
	fernetMinSize = 1 + 8 + 16 + 16 + 32
)

// isFernetToken reports whether token is the URL-safe base64 text of a
// Fernet token, which is what the two-field files carry in their token field.
func isFernetToken(token []byte) bool {
	if len(token) == 0 || len(token)%4 != 0 {
		return false
	}
	raw, err := base64.URLEncoding.DecodeString(string(token))
	return err == nil && len(raw) >= fernetMinSize && raw[0] == fernetVersion
}

// openFernet verifies and decrypts a Fernet token under the 32-byte derived
// key. Token age is not checked. Any failure is reported as ErrIntegrity.
func openFernet(key, token []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, KeySize, len(key))
	}

	var k fernet.Key
	copy(k[:], key)
	defer Wipe(k[:])

	plaintext := fernet.VerifyAndDecrypt(token, -1, []*fernet.Key{&k})
	if plaintext == nil {
		return nil, kerrors.ErrIntegrity
	}
	return plaintext, nil
}

// TokenFormat reports how the token is sealed. Only files without KDF
// metadata may carry Fernet tokens; everything keyseal writes is secretbox.
func (a *Artifact) TokenFormat() string {
	if a.Legacy && isFernetToken(a.Token) {
		return FormatFernet
	}
	return FormatSecretbox
}

// openToken dispatches on the token format.
func (a *Artifact) openToken(key []byte) ([]byte, error) {
	if a.TokenFormat() == FormatFernet {
		return openFernet(key, a.Token)
	}
	return Open(key, a.Token)
}
