// Package logger provides leveled logging for keyseal commands.
//
// Verbosity is controlled by the global --verbose and --debug flags:
//
//	Logger.Infof()          // Shown with --verbose or --debug
//	Logger.Debugf()         // Shown only with --debug
//	Logger.Warnf()          // Shown with --verbose or --debug
//	Logger.WarnfAlways()    // Always shown
//	Logger.Errorf()         // Shown with --debug
//	Logger.ErrorfAndReturn() // Errorf, then returns the message as an error
//
// Every level writes to Logger.Out, stderr by default, so `keyseal decrypt
// --raw --verbose` still prints only the key on stdout.
//
// Log lines name paths, KDF parameters and timings. They never contain the
// secret or the passphrase.
package logger
