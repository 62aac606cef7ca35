// Package rate provides the Redis-backed login rate limiter. It is optional:
// the engine runs without it, and a nil *Limiter disables throttling.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on first hit. Key prefixes:
//   - al:  — login per-email
//   - ali: — login per-IP
//
// # What this package must NOT do
//
//   - Reveal account existence: missing counters read as zero.
//   - Be imported outside the authcore module.
package rate
