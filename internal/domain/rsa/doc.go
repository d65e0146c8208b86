// Package rsa defines the core types and contracts for textbook RSA key
// material: the full key with its secret prime factors, the two exponent
// projections derived from it, and the interfaces for primality testing,
// key generation and the per-unit modular-exponentiation transform.
package rsa
