//go:build integration
// +build integration

package app

import (
	"crypto/rand"
	"testing"

	"rsa_forge_service/internal/domain/keys"
	rsaDomain "rsa_forge_service/internal/domain/rsa"
	"rsa_forge_service/internal/infrastructure/cryptography"
	"rsa_forge_service/internal/infrastructure/persistence"
	"rsa_forge_service/internal/infrastructure/vault"
	"rsa_forge_service/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	KeyGenerationService keys.KeyGenerationService
	KeyMetadataService   keys.KeyMetadataService
	KeyDownloadService   keys.KeyDownloadService

	KeyCodec rsaDomain.KeyCodec

	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)

	dbContext := persistence.SetupTestDB(t)

	keyVault, err := vault.NewFileVault(t.TempDir(), logger)
	require.NoError(t, err)

	tester, err := cryptography.NewSolovayStrassen(rand.Reader, logger)
	require.NoError(t, err)

	keyGenerator, err := cryptography.NewRSAKeyGenerator(rand.Reader, tester, logger)
	require.NoError(t, err)

	keyCodec := cryptography.NewKeyCodec()

	keyGenerationService, err := NewKeyGenerationService(keyGenerator, keyCodec, keyVault, dbContext.KeyRepo, logger)
	require.NoError(t, err)

	keyMetadataService, err := NewKeyMetadataService(keyVault, dbContext.KeyRepo, logger)
	require.NoError(t, err)

	keyDownloadService, err := NewKeyDownloadService(keyVault, dbContext.KeyRepo, logger)
	require.NoError(t, err)

	return &TestServices{
		KeyGenerationService: keyGenerationService,
		KeyMetadataService:   keyMetadataService,
		KeyDownloadService:   keyDownloadService,
		KeyCodec:             keyCodec,
		DBContext:            dbContext,
	}
}
