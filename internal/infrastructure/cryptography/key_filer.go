package cryptography

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	rsaDomain "rsa_forge_service/internal/domain/rsa"
	"rsa_forge_service/internal/pkg/logger"
)

// keyFiler struct that implements the KeyFiler interface
type keyFiler struct {
	codec  rsaDomain.KeyCodec
	logger logger.Logger
}

// NewKeyFiler creates a filer that persists keys as labeled hex block files.
func NewKeyFiler(codec rsaDomain.KeyCodec, logger logger.Logger) (rsaDomain.KeyFiler, error) {
	if codec == nil {
		return nil, fmt.Errorf("%w: codec cannot be nil", rsaDomain.ErrInvalidArgument)
	}
	return &keyFiler{
		codec:  codec,
		logger: logger,
	}, nil
}

// DumpKey writes the labeled factor block of a full key to w.
func (f *keyFiler) DumpKey(w io.Writer, key *rsaDomain.Key) error {
	data, err := f.codec.EncodeKey(key)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to dump key: %w", err)
	}
	return nil
}

// SaveKeyToFile saves a full key to a labeled hex block file.
func (f *keyFiler) SaveKeyToFile(key *rsaDomain.Key, filename string) error {
	data, err := f.codec.EncodeKey(key)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Clean(filename), data, 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}

	f.logger.Info("Saved RSA key ", filename)
	return nil
}

// ReadKeyFromFile reads a full key from a labeled hex block file.
func (f *keyFiler) ReadKeyFromFile(filename string) (*rsaDomain.Key, error) {
	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("unable to read key file: %w", err)
	}

	return f.codec.DecodeKey(data)
}

// SavePublicKeyToFile saves the (n, d) projection to a labeled hex block file.
func (f *keyFiler) SavePublicKeyToFile(key *rsaDomain.PublicKey, filename string) error {
	data, err := f.codec.EncodePublicKey(key)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Clean(filename), data, 0600); err != nil {
		return fmt.Errorf("failed to write public key file: %w", err)
	}

	f.logger.Info("Saved RSA public key ", filename)
	return nil
}

// ReadPublicKeyFromFile reads the (n, d) projection from a labeled hex block file.
func (f *keyFiler) ReadPublicKeyFromFile(filename string) (*rsaDomain.PublicKey, error) {
	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("unable to read public key file: %w", err)
	}

	return f.codec.DecodePublicKey(data)
}

// SavePrivateKeyToFile saves the (n, e) projection to a labeled hex block file.
func (f *keyFiler) SavePrivateKeyToFile(key *rsaDomain.PrivateKey, filename string) error {
	data, err := f.codec.EncodePrivateKey(key)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Clean(filename), data, 0600); err != nil {
		return fmt.Errorf("failed to write private key file: %w", err)
	}

	f.logger.Info("Saved RSA private key ", filename)
	return nil
}

// ReadPrivateKeyFromFile reads the (n, e) projection from a labeled hex block file.
func (f *keyFiler) ReadPrivateKeyFromFile(filename string) (*rsaDomain.PrivateKey, error) {
	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("unable to read private key file: %w", err)
	}

	return f.codec.DecodePrivateKey(data)
}
