// Package client contains client-side building blocks for VocabDay.
//
// # Overview
//
// The package provides:
//  1. The API contract used by the CLI (see the Client interface):
//     signup/signin, availability, quiz fetch and submission, saved words.
//  2. A JSON/HTTP implementation (see HTTPClient). Authenticated calls take
//     an explicit *models.Session; an expired session is rejected locally
//     with ErrSessionExpired before any request is sent.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database with embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. A 401 on an authenticated call is
// ErrUnauthorized. Any other non-2xx answer is an *APIError carrying the
// server's message (and, for a locked quiz, the required test).
package client
