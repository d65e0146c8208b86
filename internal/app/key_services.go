package app

import (
	"context"
	"fmt"
	"time"

	"rsa_forge_service/internal/domain/keys"
	rsaDomain "rsa_forge_service/internal/domain/rsa"
	"rsa_forge_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// keyGenerationService implements the KeyGenerationService interface for
// generating key pairs and storing their material and metadata
type keyGenerationService struct {
	keyGenerator rsaDomain.KeyGenerator
	keyCodec     rsaDomain.KeyCodec
	keyVault     keys.KeyVault
	keyRepo      keys.KeyRepository
	logger       logger.Logger
}

// NewKeyGenerationService creates a new keyGenerationService instance
func NewKeyGenerationService(
	keyGenerator rsaDomain.KeyGenerator,
	keyCodec rsaDomain.KeyCodec,
	keyVault keys.KeyVault,
	keyRepo keys.KeyRepository,
	logger logger.Logger,
) (keys.KeyGenerationService, error) {
	return &keyGenerationService{
		keyGenerator: keyGenerator,
		keyCodec:     keyCodec,
		keyVault:     keyVault,
		keyRepo:      keyRepo,
		logger:       logger,
	}, nil
}

// Generate assembles a full key of the requested bit length, derives both
// projections and stores all three pieces of material with their metadata.
// It returns a slice of KeyMeta in the order full, public, private.
func (s *keyGenerationService) Generate(ctx context.Context, bitLen uint) ([]*keys.KeyMeta, error) {
	key, err := s.keyGenerator.GenerateKey(bitLen)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	publicKey, err := s.keyGenerator.DerivePublic(key)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	privateKey, err := s.keyGenerator.DerivePrivate(key)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	fullBytes, err := s.keyCodec.EncodeKey(key)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	publicBytes, err := s.keyCodec.EncodePublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	privateBytes, err := s.keyCodec.EncodePrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	keyPairID := uuid.New().String()

	var keyMetas []*keys.KeyMeta
	pieces := []struct {
		keyType  string
		material []byte
	}{
		{rsaDomain.KeyTypeFull, fullBytes},
		{rsaDomain.KeyTypePublic, publicBytes},
		{rsaDomain.KeyTypePrivate, privateBytes},
	}

	for _, piece := range pieces {
		keyMeta, err := s.storePiece(ctx, keyPairID, piece.keyType, uint32(bitLen), piece.material)
		if err != nil {
			return nil, err
		}
		keyMetas = append(keyMetas, keyMeta)
	}

	s.logger.Info("Generated ", bitLen, "-bit key pair ", keyPairID)
	return keyMetas, nil
}

// Helper function for storing one piece of key material with its metadata
func (s *keyGenerationService) storePiece(ctx context.Context, keyPairID, keyType string, keyLen uint32, material []byte) (*keys.KeyMeta, error) {
	keyMeta := &keys.KeyMeta{
		ID:              uuid.New().String(),
		KeyPairID:       keyPairID,
		Type:            keyType,
		KeyLen:          keyLen,
		DateTimeCreated: time.Now().UTC(),
	}

	if _, err := s.keyVault.Store(ctx, keyMeta.ID, keyPairID, keyType, material); err != nil {
		return nil, fmt.Errorf("failed to store %s key material: %w", keyType, err)
	}

	if err := s.keyRepo.Create(ctx, keyMeta); err != nil {
		return nil, fmt.Errorf("failed to create %s key metadata: %w", keyType, err)
	}

	return keyMeta, nil
}

// keyMetadataService implements the KeyMetadataService interface to manage
// stored key metadata
type keyMetadataService struct {
	keyVault keys.KeyVault
	keyRepo  keys.KeyRepository
	logger   logger.Logger
}

// NewKeyMetadataService creates a new keyMetadataService instance
func NewKeyMetadataService(keyVault keys.KeyVault, keyRepo keys.KeyRepository, logger logger.Logger) (keys.KeyMetadataService, error) {
	return &keyMetadataService{
		keyVault: keyVault,
		keyRepo:  keyRepo,
		logger:   logger,
	}, nil
}

// List retrieves all key metadata based on a query.
func (s *keyMetadataService) List(ctx context.Context, query *keys.KeyMetaQuery) ([]*keys.KeyMeta, error) {
	keyMetas, err := s.keyRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return keyMetas, nil
}

// GetByID retrieves the metadata of a stored key by its ID.
func (s *keyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.KeyMeta, error) {
	keyMeta, err := s.keyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return keyMeta, nil
}

// DeleteByID deletes a stored key's material and metadata by its ID.
func (s *keyMetadataService) DeleteByID(ctx context.Context, keyID string) error {
	keyMeta, err := s.GetByID(ctx, keyID)
	if err != nil {
		return fmt.Errorf("failed to get key metadata: %w", err)
	}

	err = s.keyVault.Delete(ctx, keyID, keyMeta.KeyPairID, keyMeta.Type)
	if err != nil {
		return fmt.Errorf("failed to delete key from vault: %w", err)
	}

	err = s.keyRepo.DeleteByID(ctx, keyID)
	if err != nil {
		return fmt.Errorf("failed to delete key from database: %w", err)
	}
	return nil
}

// keyDownloadService implements the KeyDownloadService interface to handle
// the retrieval of stored key material
type keyDownloadService struct {
	keyVault keys.KeyVault
	keyRepo  keys.KeyRepository
	logger   logger.Logger
}

// NewKeyDownloadService creates a new keyDownloadService instance
func NewKeyDownloadService(keyVault keys.KeyVault, keyRepo keys.KeyRepository, logger logger.Logger) (keys.KeyDownloadService, error) {
	return &keyDownloadService{
		keyVault: keyVault,
		keyRepo:  keyRepo,
		logger:   logger,
	}, nil
}

// DownloadByID retrieves the material of a stored key by its ID.
func (s *keyDownloadService) DownloadByID(ctx context.Context, keyID string) ([]byte, error) {
	keyMeta, err := s.keyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	material, err := s.keyVault.Retrieve(ctx, keyMeta.ID, keyMeta.KeyPairID, keyMeta.Type)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return material, nil
}
