// Package middleware exposes HTTP middleware adapters built on top of
// authcore.Engine verification.
//
// # Guards
//
//   - [Guard] — verifies the bearer token and injects claims into the
//     request context.
//   - [Require] — Guard plus a role check for one operation.
//
// Each guard reads the Authorization header, calls Engine.VerifyToken, and
// injects verified claims into the request context.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to the
// Engine.
//
// # What this package must NOT do
//
//   - Parse or create tokens directly (delegates to Engine).
//   - Make authorization decisions beyond pass/reject from Engine.Authorize.
package middleware
