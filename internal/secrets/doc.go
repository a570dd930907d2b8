// Package secrets seals a single secret at rest behind a passphrase.
//
// # Encryption Architecture
//
// keyseal uses a passphrase-derived key with authenticated encryption:
//
//  1. A fresh 16-byte salt is read from crypto/rand for every encryption
//  2. The passphrase and salt are stretched into a 32-byte key with
//     PBKDF2-HMAC-SHA256 (390,000 iterations by default) or Argon2id
//  3. The secret is sealed with NaCl secretbox under a random 24-byte nonce
//  4. The salt, the token and the KDF parameters are written as JSON
//
// Re-encrypting the same secret with the same passphrase produces a different
// salt and token every time.
//
// # Token Layout
//
//	version (1 byte, 0x01) || nonce (24 bytes) || secretbox output
//
// The secretbox output carries a 16-byte Poly1305 tag. Any modification,
// including to the version byte or a truncation, fails authentication.
//
// # Artifact Format
//
//	{
//	  "salt": "<base64 of 16 bytes>",
//	  "token": "<base64 of the token>",
//	  "version": 1,
//	  "kdf": "pbkdf2-sha256",
//	  "iterations": 390000
//	}
//
// Only salt and token are required. Files without KDF metadata are read with
// the default PBKDF2 parameters.
//
// # Security Considerations
//
// A wrong passphrase and a tampered token both return ErrIntegrity; the two
// cases are never distinguished. Derived keys and plaintext buffers are wiped
// before returning. Artifacts are written with 0600 permissions via a
// temporary file and rename.
package secrets
