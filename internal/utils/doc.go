// Package utils provides shared helpers for the keyseal CLI.
//
// # Filesystem Utilities
//
//   - ExpandPath: expands ~ and makes a path absolute
//   - FormatPaths: formats file paths for human-readable output
//
// # I/O Utilities
//
//   - ReadStdin: reads a piped secret from standard input
//
// # Terminal Utilities
//
//   - ReadPassphrase, ReadPassphraseFromTTY: masked prompts
//   - IsTerminal: checks if stdin is a terminal
//
// # String Utilities
//
//   - IsValidEnvName: validates environment variable names
package utils
