package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"rsa_forge_service/internal/domain/keys"
	"rsa_forge_service/internal/pkg/logger"
)

// fileVault struct that implements the KeyVault interface with a local
// directory as backing store. Material is laid out as
// <base>/<keyPairID>/<keyID>-<keyType>-key.txt.
type fileVault struct {
	baseDir string
	logger  logger.Logger
}

// NewFileVault creates a vault rooted at baseDir, creating it if needed.
func NewFileVault(baseDir string, logger logger.Logger) (keys.KeyVault, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("vault directory cannot be empty")
	}

	if err := os.MkdirAll(filepath.Clean(baseDir), 0700); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}

	return &fileVault{
		baseDir: baseDir,
		logger:  logger,
	}, nil
}

// Store persists the material of one key and returns its path.
func (v *fileVault) Store(_ context.Context, keyID, keyPairID, keyType string, material []byte) (string, error) {
	dir := filepath.Join(v.baseDir, keyPairID)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create key pair directory: %w", err)
	}

	path := v.materialPath(keyID, keyPairID, keyType)
	if err := os.WriteFile(path, material, 0600); err != nil {
		return "", fmt.Errorf("failed to store key material: %w", err)
	}

	v.logger.Info("Stored key material ", path)
	return path, nil
}

// Retrieve returns the material of a stored key.
func (v *fileVault) Retrieve(_ context.Context, keyID, keyPairID, keyType string) ([]byte, error) {
	path := v.materialPath(keyID, keyPairID, keyType)

	material, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve key material: %w", err)
	}

	return material, nil
}

// Delete removes the material of a stored key.
func (v *fileVault) Delete(_ context.Context, keyID, keyPairID, keyType string) error {
	path := v.materialPath(keyID, keyPairID, keyType)

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete key material: %w", err)
	}

	v.logger.Info("Deleted key material ", path)
	return nil
}

func (v *fileVault) materialPath(keyID, keyPairID, keyType string) string {
	return filepath.Join(v.baseDir, keyPairID, fmt.Sprintf("%s-%s-key.txt", keyID, keyType))
}
