package workflows

import (
	"crypto/subtle"
	"os"

	kerrors "github.com/autoagro/keyseal/internal/errors"
	"github.com/autoagro/keyseal/internal/secrets"
)

// PassphraseSource tells where a passphrase came from.
type PassphraseSource string

const (
	SourceEnv    PassphraseSource = "env"
	SourcePrompt PassphraseSource = "prompt"
)

// PassphraseOptions configures passphrase resolution.
type PassphraseOptions struct {
	// EnvVar is checked first. A set but empty variable counts as unset.
	EnvVar string

	// Confirm asks for the passphrase twice when prompting.
	Confirm bool

	// Prompt reads a masked line. Nil means no terminal is available.
	Prompt func(prompt string) ([]byte, error)

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// PassphraseResult holds a resolved passphrase. The caller owns Passphrase
// and should wipe it.
type PassphraseResult struct {
	Passphrase []byte
	Source     PassphraseSource
}

// ResolvePassphrase returns the passphrase from opts.EnvVar, or prompts for it.
//
// Returns ErrNotTerminal if the variable is unset and there is no prompt.
// Returns ErrEmptyPassphrase if the prompt yields nothing.
// Returns ErrPassphraseMismatch if confirmation differs.
func ResolvePassphrase(opts PassphraseOptions) (*PassphraseResult, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if opts.EnvVar != "" {
		if value, ok := lookup(opts.EnvVar); ok && value != "" {
			return &PassphraseResult{Passphrase: []byte(value), Source: SourceEnv}, nil
		}
	}

	if opts.Prompt == nil {
		return nil, kerrors.ErrNotTerminal
	}

	passphrase, err := opts.Prompt("Passphrase: ")
	if err != nil {
		return nil, err
	}
	if len(passphrase) == 0 {
		return nil, kerrors.ErrEmptyPassphrase
	}

	if opts.Confirm {
		confirm, err := opts.Prompt("Confirm passphrase: ")
		if err != nil {
			secrets.Wipe(passphrase)
			return nil, err
		}
		defer secrets.Wipe(confirm)

		if subtle.ConstantTimeCompare(passphrase, confirm) != 1 {
			secrets.Wipe(passphrase)
			return nil, kerrors.ErrPassphraseMismatch
		}
	}

	return &PassphraseResult{Passphrase: passphrase, Source: SourcePrompt}, nil
}
