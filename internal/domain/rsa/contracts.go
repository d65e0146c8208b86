package rsa

import (
	"io"
	"math/big"
)

// PrimalityTester performs a probabilistic compositeness check.
type PrimalityTester interface {
	// IsProbablePrime reports whether n is a probable prime after at most
	// the given number of randomized rounds. It returns an error only for
	// malformed input (nil n) or a failing random source.
	IsProbablePrime(n *big.Int, rounds uint) (bool, error)
}

// KeyGenerator assembles textbook RSA keys and derives their projections.
type KeyGenerator interface {
	// GenerateKey generates a full key whose modulus has exactly the given
	// even, positive bit length.
	GenerateKey(bitLen uint) (*Key, error)

	// GenerateFactors produces primes p and q of bitLen/2 bits each whose
	// product n has exactly bitLen bits.
	GenerateFactors(bitLen uint) (n, p, q *big.Int, err error)

	// GenerateExponents derives the exponent pair (e, d) from the prime
	// factors p and q, with e fixed to PublicExponent.
	GenerateExponents(p, q *big.Int) (e, d *big.Int, err error)

	// DerivePublic copies the (n, d) projection out of a full key.
	DerivePublic(key *Key) (*PublicKey, error)

	// DerivePrivate copies the (n, e) projection out of a full key.
	DerivePrivate(key *Key) (*PrivateKey, error)
}

// TransformEngine applies modular exponentiation to single data units and
// drives it over byte streams.
type TransformEngine interface {
	// Transform computes unit^exponent mod modulus.
	Transform(unit, exponent, modulus *big.Int) *big.Int

	// EncryptStream reads bytes from r one unit at a time and writes one
	// hexadecimal big-integer token per line to w.
	EncryptStream(r io.Reader, w io.Writer, exponent, modulus *big.Int) error

	// DecryptStream parses one hexadecimal big-integer token per line from
	// r and writes the recovered bytes to w.
	DecryptStream(r io.Reader, w io.Writer, exponent, modulus *big.Int) error
}

// KeyCodec serializes key material to and from the labeled hex block format.
type KeyCodec interface {
	EncodeKey(key *Key) ([]byte, error)
	DecodeKey(data []byte) (*Key, error)
	EncodePublicKey(key *PublicKey) ([]byte, error)
	DecodePublicKey(data []byte) (*PublicKey, error)
	EncodePrivateKey(key *PrivateKey) ([]byte, error)
	DecodePrivateKey(data []byte) (*PrivateKey, error)
}

// KeyFiler dumps keys and persists them as labeled hex block files.
type KeyFiler interface {
	// DumpKey writes the labeled factor block of a full key to w.
	DumpKey(w io.Writer, key *Key) error

	SaveKeyToFile(key *Key, filename string) error
	ReadKeyFromFile(filename string) (*Key, error)

	SavePublicKeyToFile(key *PublicKey, filename string) error
	ReadPublicKeyFromFile(filename string) (*PublicKey, error)

	SavePrivateKeyToFile(key *PrivateKey, filename string) error
	ReadPrivateKeyFromFile(filename string) (*PrivateKey, error)
}
