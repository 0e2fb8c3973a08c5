// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Provider services hold at most one session each. A session is built by
// the driven.SessionFactory from validated credentials and dropped by Reset
// or by an authentication failure. Sessions are never persisted; the
// RestoreService rebuilds them from stored credentials at startup.
package services
