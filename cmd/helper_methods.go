package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/autoagro/keyseal/internal/errors"
	"github.com/autoagro/keyseal/internal/secrets"
	"github.com/autoagro/keyseal/internal/ui"
	"github.com/autoagro/keyseal/internal/utils"

	"github.com/briandowns/spinner"
)

// Prompt seams, replaced in tests.
var (
	readPassphrase        = utils.ReadPassphrase
	readPassphraseFromTTY = utils.ReadPassphraseFromTTY
	readSecretFromStdin   = utils.ReadStdin
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// The spinner draws on stderr so stdout stays clean for `decrypt --raw`.
// spinner.FinalMSG values do NOT need trailing newlines; cleanup prints the
// final message to stdout with ui.EnsureNewline().
func startSpinner(message string, quiet bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	animate := !verbose && !debug && !quiet
	if animate {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running without spinner: %s", message)
	}

	cleanup := func() {
		if animate {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if animate {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// reportedError marks an error whose message was already printed through a
// spinner final message. Execute does not print it again.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// kdfFlag is a pflag.Value restricted to the supported key derivation functions.
type kdfFlag struct {
	value secrets.KDF
}

func (f *kdfFlag) String() string { return string(f.value) }

func (f *kdfFlag) Set(s string) error {
	kdf, err := secrets.ParseKDF(s)
	if err != nil {
		return fmt.Errorf("must be %s or %s", secrets.PBKDF2SHA256, secrets.Argon2ID)
	}
	f.value = kdf
	return nil
}

func (f *kdfFlag) Type() string { return "kdf" }

// artifactPath picks the flag value over the configured path and expands it.
func artifactPath(flagValue string) (string, error) {
	path := flagValue
	if path == "" {
		path = cfg.ArtifactPath
	}
	return utils.ExpandPath(path)
}

// failureMessage renders err as the final message of a command.
func failureMessage(err error, path string) string {
	switch {
	case errors.Is(err, kerrors.ErrArtifactNotFound):
		return ui.ErrorLine("No sealed API key found at "+ui.Path.Sprint(path)) + "\n" +
			ui.HintLine("Run "+ui.Code.Sprint("keyseal encrypt")+" to create one")
	case errors.Is(err, kerrors.ErrMalformedArtifact):
		return ui.ErrorLine(ui.Path.Sprint(path)+" is not a valid keyseal artifact") + "\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	case errors.Is(err, kerrors.ErrIntegrity):
		return ui.ErrorLine("Wrong passphrase or corrupted file")
	case errors.Is(err, kerrors.ErrRandomness):
		return ui.ErrorLine("Secure random source unavailable, nothing was written") + "\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	case errors.Is(err, kerrors.ErrPassphraseMismatch):
		return ui.ErrorLine("Passphrases do not match")
	case errors.Is(err, kerrors.ErrEmptyPassphrase):
		return ui.ErrorLine("Passphrase cannot be empty")
	case errors.Is(err, kerrors.ErrEmptySecret):
		return ui.ErrorLine("API key cannot be empty")
	case errors.Is(err, kerrors.ErrNotTerminal):
		return ui.ErrorLine("No passphrase available") + "\n" +
			ui.HintLine("Set "+ui.Highlight.Sprint(cfg.PassphraseEnv)+" or run "+ui.Code.Sprint("keyseal")+" in a terminal")
	case errors.Is(err, kerrors.ErrInvalidKDFParams), errors.Is(err, kerrors.ErrUnsupportedKDF):
		return ui.ErrorLine("Invalid key derivation settings") + "\n" +
			ui.Error.Sprint("Error: ") + err.Error() + "\n" +
			ui.HintLine("Adjust "+ui.Flag.Sprint("--iterations")+" or run "+ui.Code.Sprint("keyseal config show")+" to check the defaults")
	default:
		return ui.ErrorLine("Failed: " + err.Error())
	}
}

// printFailure prints the failure message for err on stderr and marks err as reported.
// Any running spinner must be stopped first.
func printFailure(err error, path string) error {
	Logger.Errorf("%v", err)
	fmt.Fprintln(os.Stderr, failureMessage(err, path))
	return reported(err)
}

// describeKDF renders KDF parameters for final messages.
func describeKDF(p secrets.KDFParams) string {
	if p.Algorithm == secrets.Argon2ID {
		return ui.Highlight.Sprint(string(p.Algorithm)) + " " +
			ui.Muted.Sprintf("t=%d, m=%d MiB, p=%d", p.Iterations, p.Memory/1024, p.Threads)
	}
	return ui.Highlight.Sprint(string(p.Algorithm)) + " " + ui.Muted.Sprintf("%d iterations", p.Iterations)
}
