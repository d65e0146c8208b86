//go:build integration
// +build integration

package persistence

import (
	"testing"

	"rsa_forge_service/internal/domain/keys"
	"rsa_forge_service/internal/infrastructure/persistence/models"
	"rsa_forge_service/internal/pkg/config"
	"rsa_forge_service/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds the test database and repository under test.
type TestContext struct {
	DB      *gorm.DB
	KeyRepo keys.KeyRepository
}

// SetupTestDB initializes an in-memory SQLite database with migrated schema.
func SetupTestDB(t *testing.T) *TestContext {
	t.Helper()

	settings := config.DatabaseSettings{
		Type: config.SqliteDbType,
		DSN:  ":memory:",
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.KeyMetaModel{}))

	logger := testutil.SetupTestLogger(t)
	repo, err := NewGormKeyRepository(db, logger)
	require.NoError(t, err)

	return &TestContext{
		DB:      db,
		KeyRepo: repo,
	}
}
