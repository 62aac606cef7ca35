// Package token issues and verifies the signed session tokens used by the
// engine. It wraps github.com/golang-jwt/jwt/v5 behind a small Manager so the
// rest of the module never touches jwt parser options directly.
//
// The manager supports HS256 (shared secret) and Ed25519 signing. The "none"
// algorithm is impossible: verification pins the expected method and rejects
// everything else, including an attacker downgrading an Ed25519 token to
// HS256 signed with the public key.
//
// Verification failures are classified into the sentinel errors in errors.go
// so callers can audit the failure class. The engine collapses all of them to
// a single opaque outcome before anything reaches a client.
package token
