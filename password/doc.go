// Package password hashes and verifies credentials with argon2id in PHC
// string format. Hashes are self-describing: the cost parameters and salt are
// encoded in the string, so parameters can be raised without invalidating
// stored hashes, and NeedsUpgrade detects stale ones at login.
//
// A configured pepper (derived from the deployment's salt seed) is appended
// to the password bytes before derivation. The pepper never appears in the
// encoded hash, so a leaked hash table alone is not crackable offline without
// the deployment secret.
package password
