// Package authcore provides a credential-issuance and access-control core:
// password authentication against an injected identity store, signed
// time-bounded session tokens, and role-gated request authorization.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authcore is the public surface. It exposes [Engine], [Builder], [Config],
// the [IdentityStore] contract, and value types (Claims, PublicIdentity,
// MetricsSnapshot). HTTP route wiring, CORS, and OpenAPI generation are the
// caller's concern; the examples directory shows one possible integration.
// Internal coordination — audit dispatch, rate limiting — lives under
// internal/ and is never exported.
//
// # What this package must NOT do
//
//   - Expose password hashes in any result type. PublicIdentity carries only
//     the fields safe for the wire.
//   - Distinguish "unknown email" from "wrong password" in any observable way.
//   - Accept unsigned tokens. The token manager refuses the "none" algorithm
//     by construction.
//
// # Performance contract
//
// VerifyToken is the hot path: pure computation, no I/O, no store access.
// Login and Register each pay one argon2 derivation, always outside the
// identity store's lock so a slow hash never serializes unrelated requests.
package authcore
