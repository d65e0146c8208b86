//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"rsa_forge_service/internal/domain/keys"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeyMeta(keyType string, keyLen uint32) *keys.KeyMeta {
	return &keys.KeyMeta{
		ID:              uuid.New().String(),
		KeyPairID:       uuid.New().String(),
		Type:            keyType,
		KeyLen:          keyLen,
		DateTimeCreated: time.Now().UTC(),
	}
}

func TestGormKeyRepository_CreateAndGet(t *testing.T) {
	tc := SetupTestDB(t)
	ctx := context.Background()

	meta := newTestKeyMeta("full", 64)
	require.NoError(t, tc.KeyRepo.Create(ctx, meta))

	got, err := tc.KeyRepo.GetByID(ctx, meta.ID)
	require.NoError(t, err)
	assert.Equal(t, meta.ID, got.ID)
	assert.Equal(t, meta.KeyPairID, got.KeyPairID)
	assert.Equal(t, meta.Type, got.Type)
	assert.Equal(t, meta.KeyLen, got.KeyLen)
}

func TestGormKeyRepository_CreateInvalidMeta(t *testing.T) {
	tc := SetupTestDB(t)

	meta := newTestKeyMeta("unsupported-type", 64)
	err := tc.KeyRepo.Create(context.Background(), meta)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestGormKeyRepository_List(t *testing.T) {
	tc := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, tc.KeyRepo.Create(ctx, newTestKeyMeta("full", 64)))
	require.NoError(t, tc.KeyRepo.Create(ctx, newTestKeyMeta("public", 64)))
	require.NoError(t, tc.KeyRepo.Create(ctx, newTestKeyMeta("private", 128)))

	all, err := tc.KeyRepo.List(ctx, keys.NewKeyMetaQuery())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	query := keys.NewKeyMetaQuery()
	query.Type = "public"
	filtered, err := tc.KeyRepo.List(ctx, query)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "public", filtered[0].Type)

	query = keys.NewKeyMetaQuery()
	query.Limit = 2
	query.SortBy = "key_len"
	query.SortOrder = "desc"
	limited, err := tc.KeyRepo.List(ctx, query)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, uint32(128), limited[0].KeyLen)
}

func TestGormKeyRepository_DeleteByID(t *testing.T) {
	tc := SetupTestDB(t)
	ctx := context.Background()

	meta := newTestKeyMeta("full", 64)
	require.NoError(t, tc.KeyRepo.Create(ctx, meta))
	require.NoError(t, tc.KeyRepo.DeleteByID(ctx, meta.ID))

	_, err := tc.KeyRepo.GetByID(ctx, meta.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGormKeyRepository_UpdateByID(t *testing.T) {
	tc := SetupTestDB(t)
	ctx := context.Background()

	meta := newTestKeyMeta("public", 64)
	require.NoError(t, tc.KeyRepo.Create(ctx, meta))

	meta.KeyLen = 128
	require.NoError(t, tc.KeyRepo.UpdateByID(ctx, meta))

	got, err := tc.KeyRepo.GetByID(ctx, meta.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(128), got.KeyLen)
}

func TestGormKeyRepository_GetMissingID(t *testing.T) {
	tc := SetupTestDB(t)

	_, err := tc.KeyRepo.GetByID(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
