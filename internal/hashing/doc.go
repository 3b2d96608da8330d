// Package hashing provides the one-way transforms shared by every credential check in
// the service: Argon2id digests for low-entropy values supplied by people (the
// client auth hash, shared secret passwords) and SHA-256 digests for high-entropy
// bearer tokens (refresh tokens, secret capability tokens).
//
// Argon2id verification compares in constant time. Token digests are only ever
// used as lookup keys.
package hashing
