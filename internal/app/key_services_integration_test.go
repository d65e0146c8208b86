//go:build integration
// +build integration

package app

import (
	"context"
	"math/big"
	"testing"

	"rsa_forge_service/internal/domain/keys"
	rsaDomain "rsa_forge_service/internal/domain/rsa"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyBitLen uint = 64

func TestKeyGenerationService_Generate(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	keyMetas, err := services.KeyGenerationService.Generate(ctx, testKeyBitLen)
	require.NoError(t, err)
	require.Len(t, keyMetas, 3)

	assert.Equal(t, rsaDomain.KeyTypeFull, keyMetas[0].Type)
	assert.Equal(t, rsaDomain.KeyTypePublic, keyMetas[1].Type)
	assert.Equal(t, rsaDomain.KeyTypePrivate, keyMetas[2].Type)

	keyPairID := keyMetas[0].KeyPairID
	for _, keyMeta := range keyMetas {
		assert.Equal(t, keyPairID, keyMeta.KeyPairID)
		assert.Equal(t, uint32(testKeyBitLen), keyMeta.KeyLen)
		assert.NoError(t, keyMeta.Validate())
	}
}

func TestKeyGenerationService_GenerateInvalidBitLength(t *testing.T) {
	services := SetupTestServices(t)

	_, err := services.KeyGenerationService.Generate(context.Background(), 63)
	require.Error(t, err)
	assert.ErrorIs(t, err, rsaDomain.ErrInvalidArgument)
}

func TestKeyMetadataService_ListAndGet(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	keyMetas, err := services.KeyGenerationService.Generate(ctx, testKeyBitLen)
	require.NoError(t, err)

	listed, err := services.KeyMetadataService.List(ctx, keys.NewKeyMetaQuery())
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	got, err := services.KeyMetadataService.GetByID(ctx, keyMetas[1].ID)
	require.NoError(t, err)
	assert.Equal(t, rsaDomain.KeyTypePublic, got.Type)
}

func TestKeyDownloadService_DownloadByID(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	keyMetas, err := services.KeyGenerationService.Generate(ctx, testKeyBitLen)
	require.NoError(t, err)

	material, err := services.KeyDownloadService.DownloadByID(ctx, keyMetas[0].ID)
	require.NoError(t, err)

	key, err := services.KeyCodec.DecodeKey(material)
	require.NoError(t, err)
	assert.Equal(t, int(testKeyBitLen), key.N.BitLen())
	assert.Zero(t, key.N.Cmp(new(big.Int).Mul(key.P, key.Q)))
}

func TestKeyMetadataService_DeleteByID(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	keyMetas, err := services.KeyGenerationService.Generate(ctx, testKeyBitLen)
	require.NoError(t, err)

	require.NoError(t, services.KeyMetadataService.DeleteByID(ctx, keyMetas[0].ID))

	_, err = services.KeyMetadataService.GetByID(ctx, keyMetas[0].ID)
	require.Error(t, err)

	_, err = services.KeyDownloadService.DownloadByID(ctx, keyMetas[0].ID)
	require.Error(t, err)

	remaining, err := services.KeyMetadataService.List(ctx, keys.NewKeyMetaQuery())
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}
