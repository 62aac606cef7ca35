// Package store provides the in-memory IdentityStore implementation used as
// the default credential repository. It is a process-local map guarded by a
// read-write mutex; durability and replication are out of scope, callers
// needing them plug their own IdentityStore into the builder.
package store
