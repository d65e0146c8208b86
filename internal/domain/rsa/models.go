package rsa

import "math/big"

// Key holds the five factors of a textbook RSA key: the modulus n = p*q, the
// secret primes p and q, and the exponent pair (e, d) with
// e*d = 1 mod (p-1)(q-1). KeyLen records the exact bit length of n.
type Key struct {
	N      *big.Int
	P      *big.Int
	Q      *big.Int
	E      *big.Int
	D      *big.Int
	KeyLen uint
}

// PublicKey is the (n, d) projection of a Key.
//
// The naming keeps the convention of the factor layout this service
// reproduces: the "public" projection carries the exponent d and the
// "private" projection carries e. The transform is symmetric, so either
// half can be published as long as the other stays secret.
type PublicKey struct {
	N      *big.Int
	D      *big.Int
	KeyLen uint
}

// PrivateKey is the (n, e) projection of a Key.
type PrivateKey struct {
	N      *big.Int
	E      *big.Int
	KeyLen uint
}
