//go:build unit
// +build unit

package vault

import (
	"context"
	"testing"

	"rsa_forge_service/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileVault_StoreRetrieveDelete(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	v, err := NewFileVault(t.TempDir(), logger)
	require.NoError(t, err)

	ctx := context.Background()
	keyID := uuid.New().String()
	keyPairID := uuid.New().String()
	material := []byte("=== PRIVATE KEY ===\nn: 0xca1\ne: 0x11\n=== END ===\n")

	path, err := v.Store(ctx, keyID, keyPairID, "private", material)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	got, err := v.Retrieve(ctx, keyID, keyPairID, "private")
	require.NoError(t, err)
	assert.Equal(t, material, got)

	require.NoError(t, v.Delete(ctx, keyID, keyPairID, "private"))

	_, err = v.Retrieve(ctx, keyID, keyPairID, "private")
	assert.Error(t, err)
}

func TestNewFileVault_EmptyDirectory(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	_, err := NewFileVault("", logger)
	assert.Error(t, err)
}
