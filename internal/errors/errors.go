package errors

import "errors"

// Artifact errors indicate issues locating or parsing a sealed artifact on disk.
var (
	// ErrArtifactNotFound indicates the artifact path does not exist.
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrMalformedArtifact indicates the artifact exists but is not a valid sealed document.
	ErrMalformedArtifact = errors.New("malformed artifact")
)

// Cryptographic errors indicate failures during key derivation, sealing or opening.
var (
	// ErrIntegrity indicates authenticated decryption failed. A wrong passphrase and a
	// tampered token are reported the same way.
	ErrIntegrity = errors.New("wrong passphrase or corrupted file")

	// ErrRandomness indicates the secure random source could not be read.
	ErrRandomness = errors.New("secure random source unavailable")

	// ErrInvalidKeyLength indicates a symmetric key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid symmetric key length")

	// ErrInvalidKDFParams indicates the salt or work factor is outside the accepted range.
	ErrInvalidKDFParams = errors.New("invalid key derivation parameters")

	// ErrUnsupportedKDF indicates the key derivation function is not known.
	ErrUnsupportedKDF = errors.New("unsupported key derivation function")
)

// Input errors indicate problems with what the user supplied.
var (
	// ErrEmptyPassphrase indicates an empty passphrase was supplied.
	ErrEmptyPassphrase = errors.New("passphrase cannot be empty")

	// ErrPassphraseMismatch indicates the passphrase confirmation did not match.
	ErrPassphraseMismatch = errors.New("passphrases do not match")

	// ErrEmptySecret indicates an empty secret was supplied for encryption.
	ErrEmptySecret = errors.New("secret cannot be empty")

	// ErrNotTerminal indicates an interactive prompt was needed but no terminal is attached.
	ErrNotTerminal = errors.New("stdin is not a terminal")
)

// Configuration errors.
var (
	// ErrInvalidConfig indicates a configuration key or value is not accepted.
	ErrInvalidConfig = errors.New("invalid configuration")
)
