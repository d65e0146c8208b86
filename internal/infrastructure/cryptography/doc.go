// Package cryptography implements the number-theoretic core of the service:
// the Solovay-Strassen primality tester, constrained random prime pair
// generation, exponent derivation, the per-unit modular-exponentiation
// transform with its byte-stream drivers, and the labeled hex block key
// serialization.
package cryptography
