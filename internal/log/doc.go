// Package log provides logging with automatic sanitization of
// credential material, built on the standard slog package.
//
// RedFox exists to send hand-crafted requests, and hand-crafted
// requests routinely carry live credentials: session cookies in custom
// headers, passwords in form bodies, bearer tokens under test. Those
// values flow through the same code paths that log diagnostics, so the
// SecureHandler masks credential-bearing attributes (authorization,
// cookie, password, token, session identifiers) before any record
// reaches the sink - even in verbose mode.
//
// The handler wraps any slog.Handler, so text and JSON output both get
// the same treatment, and the resulting *slog.Logger works everywhere a
// standard logger does, including slog.SetDefault.
package log
