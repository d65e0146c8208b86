package keys

import (
	"context"
)

// KeyGenerationService defines methods for generating and storing key material.
type KeyGenerationService interface {
	// Generate assembles a full key of the requested bit length, derives
	// both projections and stores all three pieces of material with their
	// metadata. It returns the metadata entries in the order full, public,
	// private.
	Generate(ctx context.Context, bitLen uint) ([]*KeyMeta, error)
}

// KeyMetadataService defines methods for managing stored key metadata.
type KeyMetadataService interface {
	// List retrieves all key metadata considering a query filter when set.
	List(ctx context.Context, query *KeyMetaQuery) ([]*KeyMeta, error)

	// GetByID retrieves the metadata of a stored key by its unique ID.
	GetByID(ctx context.Context, keyID string) (*KeyMeta, error)

	// DeleteByID deletes a stored key, its material and its metadata by ID.
	DeleteByID(ctx context.Context, keyID string) error
}

// KeyDownloadService defines methods for retrieving stored key material.
type KeyDownloadService interface {
	// DownloadByID returns the serialized material of a stored key.
	DownloadByID(ctx context.Context, keyID string) ([]byte, error)
}

// KeyRepository defines the interface for key metadata persistence.
type KeyRepository interface {
	Create(ctx context.Context, key *KeyMeta) error
	List(ctx context.Context, query *KeyMetaQuery) ([]*KeyMeta, error)
	GetByID(ctx context.Context, keyID string) (*KeyMeta, error)
	UpdateByID(ctx context.Context, key *KeyMeta) error
	DeleteByID(ctx context.Context, keyID string) error
}

// KeyVault is an interface for storing raw key material. The current
// implementation writes labeled hex block files to a local directory; it may
// be replaced with a remote secret store without touching the services.
type KeyVault interface {
	// Store persists the material of one key and returns its location.
	Store(ctx context.Context, keyID, keyPairID, keyType string, material []byte) (string, error)

	// Retrieve returns the material of a stored key.
	Retrieve(ctx context.Context, keyID, keyPairID, keyType string) ([]byte, error)

	// Delete removes the material of a stored key.
	Delete(ctx context.Context, keyID, keyPairID, keyType string) error
}
