//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *DatabaseSettings
		expectedError bool
	}{
		{
			name: "valid sqlite settings",
			settings: &DatabaseSettings{
				Type: SqliteDbType,
				DSN:  "rsa_forge.db",
			},
			expectedError: false,
		},
		{
			name: "valid postgres settings",
			settings: &DatabaseSettings{
				Type:   PostgresDbType,
				DSN:    "host=localhost user=postgres password=postgres dbname=rsa_forge port=5432",
				DBName: "rsa_forge",
			},
			expectedError: false,
		},
		{
			name: "missing type",
			settings: &DatabaseSettings{
				DSN: "rsa_forge.db",
			},
			expectedError: true,
		},
		{
			name: "unsupported type",
			settings: &DatabaseSettings{
				Type: "mysql",
				DSN:  "root@/rsa_forge",
			},
			expectedError: true,
		},
		{
			name: "missing dsn",
			settings: &DatabaseSettings{
				Type: SqliteDbType,
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
