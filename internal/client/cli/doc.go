// Package cli provides the interactive HealthDesk command-line client.
//
// It wires configuration, the local session store, the API gateway and the
// application services into an interactive REPL. Typical flow: rehydrate any
// persisted session, walk the password+OTP login when needed, and execute
// user commands against the remote system.
//
// Key features:
//   - Login (password then one-time password) / Logout
//   - Dashboard counters
//   - Client registry: list, search, profile, register, update, delete
//   - Health programs: list, create, enroll clients
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
