// Package api is the authenticated request gateway: the single choke point
// through which every call to the health-program management API passes.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the two-step authentication endpoints and the clients/programs/
//     dashboard resources.
//  2. A concrete net/http implementation (see HTTPClient) that stamps every
//     outgoing request with the Authorization header derived from a
//     TokenSource, and classifies every failure into one of three shapes.
//
// # Error Handling
//
// Callers match outcomes with errors.Is / errors.As:
//   - ErrUnavailable — no response reached the client; fixed advisory message.
//   - ErrUnauthorized — the server rejected the credential. Before this is
//     returned, the registered auth-failure hook runs, which tears down the
//     session; the original caller still receives the error rather than a
//     silent hang.
//   - *ServerError — any other failure response; Error() is the server's own
//     message so screens can render it inline unchanged.
//
// No call site re-implements error interpretation; everything lives in
// HTTPClient.do.
package api
