// Package cli provides the interactive VocabDay command-line client.
//
// It wires configuration, the local session store, the HTTP API client and
// an interactive REPL. Typical flow: sign up or sign in, list tests, take the
// next one, and manage the personal saved-word list.
//
// Key features:
//   - Sign up / Sign in / Logout, session kept across runs
//   - Tests: progress list, interactive quiz, graded results
//   - Saved words: list with search, add, edit, delete
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
