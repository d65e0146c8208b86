package cryptography

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	rsaDomain "rsa_forge_service/internal/domain/rsa"
	"rsa_forge_service/internal/pkg/logger"
)

// rsaKeyGenerator struct that implements the KeyGenerator interface
type rsaKeyGenerator struct {
	random io.Reader
	tester rsaDomain.PrimalityTester
	logger logger.Logger
}

// NewRSAKeyGenerator creates a key generator that samples candidates from the
// given random source and screens them with the given primality tester. Pass
// crypto/rand.Reader in production; tests may pass a seeded source.
func NewRSAKeyGenerator(random io.Reader, tester rsaDomain.PrimalityTester, logger logger.Logger) (rsaDomain.KeyGenerator, error) {
	if random == nil {
		return nil, fmt.Errorf("%w: random source cannot be nil", rsaDomain.ErrInvalidArgument)
	}
	if tester == nil {
		return nil, fmt.Errorf("%w: primality tester cannot be nil", rsaDomain.ErrInvalidArgument)
	}
	return &rsaKeyGenerator{
		random: random,
		tester: tester,
		logger: logger,
	}, nil
}

// GenerateKey generates a full key whose modulus has exactly bitLen bits.
func (g *rsaKeyGenerator) GenerateKey(bitLen uint) (*rsaDomain.Key, error) {
	if bitLen == 0 || bitLen%2 != 0 {
		return nil, fmt.Errorf("%w: key length must be a positive even bit count, got %d", rsaDomain.ErrInvalidArgument, bitLen)
	}

	n, p, q, err := g.GenerateFactors(bitLen)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate n, p, q factors: %w", rsaDomain.ErrGenerationFailure, err)
	}

	e, d, err := g.GenerateExponents(p, q)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate e, d factors: %w", rsaDomain.ErrGenerationFailure, err)
	}

	g.logger.Info("Generated RSA key with modulus bit length ", bitLen)

	return &rsaDomain.Key{
		N:      n,
		P:      p,
		Q:      q,
		E:      e,
		D:      d,
		KeyLen: bitLen,
	}, nil
}

// GenerateFactors produces primes p and q of bitLen/2 bits whose product has
// exactly bitLen bits.
//
// The loop runs in two phases: a coarse magnitude check on a random p*q
// product filters wrong-sized pairs before any primality rounds are paid
// for, then p and q are independently resampled until the tester accepts
// them. Primality resampling can shift the product's bit length, so the
// magnitude is re-checked and the whole loop restarts on a mismatch. There
// is no retry cap; every positive even bit length above 2 admits primes, so
// the loop terminates with probability one.
func (g *rsaKeyGenerator) GenerateFactors(bitLen uint) (n, p, q *big.Int, err error) {
	if bitLen == 0 || bitLen%2 != 0 {
		return nil, nil, nil, fmt.Errorf("%w: modulus bit length must be a positive even number, got %d", rsaDomain.ErrInvalidArgument, bitLen)
	}

	halfBits := bitLen / 2
	n = new(big.Int)

	for {
		p, err = g.randExactBits(halfBits)
		if err != nil {
			return nil, nil, nil, err
		}
		q, err = g.randExactBits(halfBits)
		if err != nil {
			return nil, nil, nil, err
		}

		n.Mul(p, q)
		if uint(n.BitLen()) != bitLen {
			continue
		}

		p, err = g.samplePrime(halfBits)
		if err != nil {
			return nil, nil, nil, err
		}
		q, err = g.samplePrime(halfBits)
		if err != nil {
			return nil, nil, nil, err
		}

		n.Mul(p, q)
		if uint(n.BitLen()) == bitLen {
			break
		}
	}

	return n, p, q, nil
}

// GenerateExponents derives the exponent pair (e, d) from p and q.
func (g *rsaKeyGenerator) GenerateExponents(p, q *big.Int) (e, d *big.Int, err error) {
	if p == nil || q == nil {
		return nil, nil, fmt.Errorf("%w: prime factors cannot be nil", rsaDomain.ErrInvalidArgument)
	}

	// phi = (p - 1) * (q - 1)
	pMinusOne := new(big.Int).Sub(p, bigOne)
	qMinusOne := new(big.Int).Sub(q, bigOne)
	phi := new(big.Int).Mul(pMinusOne, qMinusOne)

	e = big.NewInt(rsaDomain.PublicExponent)

	if new(big.Int).GCD(nil, nil, e, phi).Cmp(bigOne) != 0 {
		return nil, nil, fmt.Errorf("%w: gcd(e, phi) != 1, public exponent not invertible", rsaDomain.ErrArithmeticInvariant)
	}

	d = new(big.Int).ModInverse(e, phi)
	if d == nil {
		return nil, nil, fmt.Errorf("%w: no modular inverse for public exponent", rsaDomain.ErrArithmeticInvariant)
	}

	// re-check (e * d) mod phi = 1; a mismatch is diagnostic, not fatal
	check := new(big.Int).Mul(e, d)
	check.Mod(check, phi)
	if check.Cmp(bigOne) != 0 {
		g.logger.Warn("exponent re-check failed: (e * d) mod phi != 1")
	}

	return e, d, nil
}

// DerivePublic copies the (n, d) projection out of a full key.
func (g *rsaKeyGenerator) DerivePublic(key *rsaDomain.Key) (*rsaDomain.PublicKey, error) {
	if key == nil || key.N == nil || key.D == nil {
		return nil, fmt.Errorf("%w: source key modulus or d exponent unset", rsaDomain.ErrInvalidArgument)
	}

	return &rsaDomain.PublicKey{
		N:      new(big.Int).Set(key.N),
		D:      new(big.Int).Set(key.D),
		KeyLen: key.KeyLen,
	}, nil
}

// DerivePrivate copies the (n, e) projection out of a full key.
func (g *rsaKeyGenerator) DerivePrivate(key *rsaDomain.Key) (*rsaDomain.PrivateKey, error) {
	if key == nil || key.N == nil || key.E == nil {
		return nil, fmt.Errorf("%w: source key modulus or e exponent unset", rsaDomain.ErrInvalidArgument)
	}

	return &rsaDomain.PrivateKey{
		N:      new(big.Int).Set(key.N),
		E:      new(big.Int).Set(key.E),
		KeyLen: key.KeyLen,
	}, nil
}

// randExactBits samples a value with exactly the given bit length: uniform
// below 2^(bits-1) with the top bit forced.
func (g *rsaKeyGenerator) randExactBits(bits uint) (*big.Int, error) {
	top := new(big.Int).Lsh(bigOne, bits-1)

	v, err := rand.Int(g.random, top)
	if err != nil {
		return nil, fmt.Errorf("failed to sample %d-bit candidate: %w", bits, err)
	}

	return v.Or(v, top), nil
}

// samplePrime resamples bit-exact candidates until the tester accepts one.
func (g *rsaKeyGenerator) samplePrime(bits uint) (*big.Int, error) {
	for {
		candidate, err := g.randExactBits(bits)
		if err != nil {
			return nil, err
		}

		ok, err := g.tester.IsProbablePrime(candidate, rsaDomain.PrimalityTestRounds)
		if err != nil {
			return nil, err
		}
		if ok {
			return candidate, nil
		}
	}
}
