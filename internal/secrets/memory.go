package secrets

import "github.com/awnumar/memguard"

// Wipe overwrites each slice with zeros. Use it with defer on passphrases and
// derived keys so they are cleared on every return path.
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		memguard.WipeBytes(b)
	}
}
