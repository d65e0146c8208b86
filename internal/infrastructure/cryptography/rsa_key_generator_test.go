//go:build unit
// +build unit

package cryptography

import (
	"crypto/rand"
	"math/big"
	"testing"

	rsaDomain "rsa_forge_service/internal/domain/rsa"
	"rsa_forge_service/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyBitLen = 64

func setupKeyGenerator(t *testing.T) rsaDomain.KeyGenerator {
	t.Helper()
	logger := testutil.SetupTestLogger(t)

	tester, err := NewSolovayStrassen(rand.Reader, logger)
	require.NoError(t, err)

	generator, err := NewRSAKeyGenerator(rand.Reader, tester, logger)
	require.NoError(t, err)
	return generator
}

func TestRSAKeyGenerator_GenerateKey(t *testing.T) {
	generator := setupKeyGenerator(t)

	key, err := generator.GenerateKey(testKeyBitLen)
	require.NoError(t, err)
	require.NotNil(t, key)

	assert.Equal(t, uint(testKeyBitLen), key.KeyLen)
	assert.Equal(t, testKeyBitLen, key.N.BitLen())
	assert.Equal(t, testKeyBitLen/2, key.P.BitLen())
	assert.Equal(t, testKeyBitLen/2, key.Q.BitLen())

	// n = p * q
	assert.Zero(t, new(big.Int).Mul(key.P, key.Q).Cmp(key.N))

	assert.True(t, key.P.ProbablyPrime(20))
	assert.True(t, key.Q.ProbablyPrime(20))

	// e * d = 1 mod (p-1)(q-1)
	phi := new(big.Int).Mul(
		new(big.Int).Sub(key.P, big.NewInt(1)),
		new(big.Int).Sub(key.Q, big.NewInt(1)),
	)
	check := new(big.Int).Mul(key.E, key.D)
	check.Mod(check, phi)
	assert.Zero(t, check.Cmp(big.NewInt(1)))

	assert.Zero(t, key.E.Cmp(big.NewInt(rsaDomain.PublicExponent)))
}

func TestRSAKeyGenerator_GenerateKeyInvalidBitLen(t *testing.T) {
	generator := setupKeyGenerator(t)

	tests := []struct {
		name   string
		bitLen uint
	}{
		{name: "zero bit length", bitLen: 0},
		{name: "odd bit length", bitLen: 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := generator.GenerateKey(tt.bitLen)
			require.Error(t, err)
			assert.ErrorIs(t, err, rsaDomain.ErrInvalidArgument)
			assert.Nil(t, key)
		})
	}
}

func TestRSAKeyGenerator_GenerateFactors(t *testing.T) {
	generator := setupKeyGenerator(t)

	n, p, q, err := generator.GenerateFactors(testKeyBitLen)
	require.NoError(t, err)

	assert.Equal(t, testKeyBitLen, n.BitLen())
	assert.Zero(t, new(big.Int).Mul(p, q).Cmp(n))

	_, _, _, err = generator.GenerateFactors(0)
	assert.ErrorIs(t, err, rsaDomain.ErrInvalidArgument)

	_, _, _, err = generator.GenerateFactors(31)
	assert.ErrorIs(t, err, rsaDomain.ErrInvalidArgument)
}

func TestRSAKeyGenerator_GenerateExponents(t *testing.T) {
	generator := setupKeyGenerator(t)

	// p = 61, q = 53: phi = 3120, 65537 = 17 mod 3120 and
	// 17^-1 mod 3120 = 2753.
	e, d, err := generator.GenerateExponents(big.NewInt(61), big.NewInt(53))
	require.NoError(t, err)

	assert.Zero(t, e.Cmp(big.NewInt(65537)))
	assert.Zero(t, d.Cmp(big.NewInt(2753)))

	_, _, err = generator.GenerateExponents(nil, big.NewInt(53))
	assert.ErrorIs(t, err, rsaDomain.ErrInvalidArgument)
}

func TestRSAKeyGenerator_GenerateExponentsNotInvertible(t *testing.T) {
	generator := setupKeyGenerator(t)

	// p - 1 = 65537 * 2, so 65537 divides phi and has no inverse.
	p := big.NewInt(65537*2 + 1)
	q := big.NewInt(3)

	_, _, err := generator.GenerateExponents(p, q)
	require.Error(t, err)
	assert.ErrorIs(t, err, rsaDomain.ErrArithmeticInvariant)
}

func TestRSAKeyGenerator_DeriveProjections(t *testing.T) {
	generator := setupKeyGenerator(t)

	key, err := generator.GenerateKey(testKeyBitLen)
	require.NoError(t, err)

	t.Run("DerivePublic", func(t *testing.T) {
		pub, err := generator.DerivePublic(key)
		require.NoError(t, err)

		assert.Zero(t, pub.N.Cmp(key.N))
		assert.Zero(t, pub.D.Cmp(key.D))
		assert.Equal(t, key.KeyLen, pub.KeyLen)

		// independent copy, no aliasing with the source key
		pub.N.Add(pub.N, big.NewInt(1))
		assert.NotZero(t, pub.N.Cmp(key.N))
	})

	t.Run("DerivePrivate", func(t *testing.T) {
		priv, err := generator.DerivePrivate(key)
		require.NoError(t, err)

		assert.Zero(t, priv.N.Cmp(key.N))
		assert.Zero(t, priv.E.Cmp(key.E))
		assert.Equal(t, key.KeyLen, priv.KeyLen)
	})

	t.Run("DerivationIsIdempotent", func(t *testing.T) {
		first, err := generator.DerivePublic(key)
		require.NoError(t, err)
		second, err := generator.DerivePublic(key)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		firstPriv, err := generator.DerivePrivate(key)
		require.NoError(t, err)
		secondPriv, err := generator.DerivePrivate(key)
		require.NoError(t, err)
		assert.Equal(t, firstPriv, secondPriv)
	})

	t.Run("UnsetFactors", func(t *testing.T) {
		_, err := generator.DerivePublic(nil)
		assert.ErrorIs(t, err, rsaDomain.ErrInvalidArgument)

		_, err = generator.DerivePublic(&rsaDomain.Key{N: key.N})
		assert.ErrorIs(t, err, rsaDomain.ErrInvalidArgument)

		_, err = generator.DerivePrivate(&rsaDomain.Key{E: key.E})
		assert.ErrorIs(t, err, rsaDomain.ErrInvalidArgument)
	})
}

func TestNewRSAKeyGenerator_InvalidDependencies(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	tester, err := NewSolovayStrassen(rand.Reader, logger)
	require.NoError(t, err)

	_, err = NewRSAKeyGenerator(nil, tester, logger)
	assert.ErrorIs(t, err, rsaDomain.ErrInvalidArgument)

	_, err = NewRSAKeyGenerator(rand.Reader, nil, logger)
	assert.ErrorIs(t, err, rsaDomain.ErrInvalidArgument)
}
