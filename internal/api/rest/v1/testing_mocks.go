//go:build unit
// +build unit

package v1

import (
	"context"

	"rsa_forge_service/internal/domain/keys"

	"github.com/stretchr/testify/mock"
)

// MockKeyGenerationService is a mock implementation of KeyGenerationService
type MockKeyGenerationService struct {
	mock.Mock
}

func (m *MockKeyGenerationService) Generate(ctx context.Context, bitLen uint) ([]*keys.KeyMeta, error) {
	args := m.Called(ctx, bitLen)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.KeyMeta), args.Error(1)
}

// MockKeyMetadataService is a mock implementation of KeyMetadataService
type MockKeyMetadataService struct {
	mock.Mock
}

func (m *MockKeyMetadataService) List(ctx context.Context, query *keys.KeyMetaQuery) ([]*keys.KeyMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.KeyMeta), args.Error(1)
}

func (m *MockKeyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.KeyMeta, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyMeta), args.Error(1)
}

func (m *MockKeyMetadataService) DeleteByID(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// MockKeyDownloadService is a mock implementation of KeyDownloadService
type MockKeyDownloadService struct {
	mock.Mock
}

func (m *MockKeyDownloadService) DownloadByID(ctx context.Context, keyID string) ([]byte, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
