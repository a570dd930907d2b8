// Package ui provides semantic text formatting for CLI output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR
// is set or colors are unavailable, text decorations are used instead:
//
//	ui.Code.Sprint("keyseal encrypt")       // `keyseal encrypt`
//	ui.Highlight.Sprint("argon2id")         // 'argon2id'
//	ui.Muted.Sprint("legacy")               // (legacy)
//	ui.Path.Sprint("plantid_key.enc")       // plantid_key.enc
//
// Commands compose their final messages from SuccessLine, ErrorLine,
// WarningLine and HintLine so every command reports results the same way.
package ui
