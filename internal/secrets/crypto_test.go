package secrets

import (
	"bytes"
	"errors"
	"testing"

	kerrors "github.com/autoagro/keyseal/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source closed")
}

// withFailingRandom swaps the random source for the duration of the test.
func withFailingRandom(t *testing.T) {
	t.Helper()
	orig := randReader
	randReader = failingReader{}
	t.Cleanup(func() { randReader = orig })
}

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, KeySize)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	for _, plaintext := range [][]byte{[]byte("sk-abc123"), {}, bytes.Repeat([]byte("x"), 4096)} {
		token, err := Seal(testKey(1), plaintext)
		require.NoError(t, err)
		assert.Len(t, token, minTokenSize+len(plaintext))
		assert.Equal(t, tokenVersion, token[0])

		got, err := Open(testKey(1), token)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(plaintext, got))
	}
}

func TestSeal_FreshNonce(t *testing.T) {
	t1, err := Seal(testKey(1), []byte("sk-abc123"))
	require.NoError(t, err)
	t2, err := Seal(testKey(1), []byte("sk-abc123"))
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}

func TestSeal_NotPlaintextAtRest(t *testing.T) {
	token, err := Seal(testKey(1), []byte("sk-abc123"))
	require.NoError(t, err)
	assert.False(t, bytes.Contains(token, []byte("sk-abc123")))
}

func TestOpen_WrongKey(t *testing.T) {
	token, err := Seal(testKey(1), []byte("sk-abc123"))
	require.NoError(t, err)

	got, err := Open(testKey(2), token)
	assert.ErrorIs(t, err, kerrors.ErrIntegrity)
	assert.Nil(t, got)
}

func TestOpen_EveryByteTampered(t *testing.T) {
	token, err := Seal(testKey(1), []byte("sk-abc123"))
	require.NoError(t, err)

	for i := range token {
		tampered := bytes.Clone(token)
		tampered[i] ^= 0x01

		got, err := Open(testKey(1), tampered)
		require.ErrorIs(t, err, kerrors.ErrIntegrity, "byte %d", i)
		assert.Nil(t, got)
	}
}

func TestOpen_Truncated(t *testing.T) {
	token, err := Seal(testKey(1), []byte("sk-abc123"))
	require.NoError(t, err)

	for _, n := range []int{0, 1, nonceSize, minTokenSize - 1, len(token) - 1} {
		_, err := Open(testKey(1), token[:n])
		assert.ErrorIs(t, err, kerrors.ErrIntegrity, "length %d", n)
	}
}

func TestSealOpen_InvalidKeyLength(t *testing.T) {
	_, err := Seal(make([]byte, 16), []byte("x"))
	assert.ErrorIs(t, err, kerrors.ErrInvalidKeyLength)

	_, err = Open(make([]byte, 31), make([]byte, minTokenSize))
	assert.ErrorIs(t, err, kerrors.ErrInvalidKeyLength)
}

func TestSeal_RandomnessFailure(t *testing.T) {
	withFailingRandom(t)

	_, err := Seal(testKey(1), []byte("sk-abc123"))
	assert.ErrorIs(t, err, kerrors.ErrRandomness)

	_, err = NewSalt()
	assert.ErrorIs(t, err, kerrors.ErrRandomness)
}

func TestWipe(t *testing.T) {
	a := []byte("passphrase")
	b := testKey(9)
	Wipe(a, b, nil)

	assert.Equal(t, make([]byte, len(a)), a)
	assert.Equal(t, make([]byte, KeySize), b)
}
