package secrets

import (
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/autoagro/keyseal/internal/errors"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// tokenVersion is the first byte of every token.
	tokenVersion byte = 0x01

	nonceSize = 24

	// minTokenSize is the length of a token sealing an empty plaintext.
	minTokenSize = 1 + nonceSize + secretbox.Overhead
)

// randReader is the secure random source. Tests replace it to simulate failure.
var randReader io.Reader = rand.Reader

func readRandom(b []byte) error {
	if _, err := io.ReadFull(randReader, b); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrRandomness, err)
	}
	return nil
}

func keyArray(key []byte) (*[KeySize]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, KeySize, len(key))
	}
	return (*[KeySize]byte)(key), nil
}

// Seal encrypts plaintext with NaCl secretbox under a fresh random nonce.
// The token layout is version || nonce || box, where box carries the
// Poly1305 tag. Sealing the same plaintext twice yields different tokens.
func Seal(key, plaintext []byte) ([]byte, error) {
	k, err := keyArray(key)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	if err := readRandom(nonce[:]); err != nil {
		return nil, err
	}

	out := make([]byte, 1, minTokenSize+len(plaintext))
	out[0] = tokenVersion
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plaintext, &nonce, k), nil
}

// Open verifies and decrypts a token produced by Seal. Any failure to
// authenticate, including a truncated token or an unknown version byte,
// is reported as ErrIntegrity.
func Open(key, token []byte) ([]byte, error) {
	k, err := keyArray(key)
	if err != nil {
		return nil, err
	}

	if len(token) < minTokenSize || token[0] != tokenVersion {
		return nil, kerrors.ErrIntegrity
	}

	var nonce [nonceSize]byte
	copy(nonce[:], token[1:1+nonceSize])

	plaintext, ok := secretbox.Open(nil, token[1+nonceSize:], &nonce, k)
	if !ok {
		return nil, kerrors.ErrIntegrity
	}
	return plaintext, nil
}
