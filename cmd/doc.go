// Package cmd implements the keyseal command-line interface.
//
// Commands are thin: they resolve flags, config and passphrases, call the
// matching function in internal/workflows and format the result. Final
// messages are printed through a spinner's FinalMSG; failures go to stderr.
package cmd
