package v1

import (
	"fmt"
	"time"

	"rsa_forge_service/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// GenerateKeyRequest represents the parameters for generating a key pair
type GenerateKeyRequest struct {
	KeyBitLen uint `json:"keyBitLen" validate:"required,keybitlen"`
}

// Validate for validating GenerateKeyRequest struct
func (r *GenerateKeyRequest) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("keybitlen", validators.KeyBitLenValidation); err != nil {
		return fmt.Errorf("failed to register key bit length validation: %w", err)
	}

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// KeyMetaResponse represents metadata of one piece of stored key material
type KeyMetaResponse struct {
	ID              string    `json:"id"`
	KeyPairID       string    `json:"keyPairId"`
	Type            string    `json:"type"`
	KeyLen          uint32    `json:"keyLen"`
	DateTimeCreated time.Time `json:"dateTimeCreated"`
}

// EncryptRequest represents the parameters for encrypting data with a stored
// key. Data carries the plaintext bytes base64 encoded.
type EncryptRequest struct {
	KeyID string `json:"keyId" validate:"required,uuid4"`
	Data  string `json:"data" validate:"required,base64"`
}

// Validate for validating EncryptRequest struct
func (r *EncryptRequest) Validate() error {
	validate := validator.New()

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// EncryptResponse carries the ciphertext in the line oriented hex token format
type EncryptResponse struct {
	KeyID      string `json:"keyId"`
	Ciphertext string `json:"ciphertext"`
}

// DecryptRequest represents the parameters for decrypting a ciphertext that
// was produced in the line oriented hex token format.
type DecryptRequest struct {
	KeyID      string `json:"keyId" validate:"required,uuid4"`
	Ciphertext string `json:"ciphertext" validate:"required"`
}

// Validate for validating DecryptRequest struct
func (r *DecryptRequest) Validate() error {
	validate := validator.New()

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// DecryptResponse carries the recovered plaintext bytes base64 encoded
type DecryptResponse struct {
	KeyID string `json:"keyId"`
	Data  string `json:"data"`
}

// ErrorResponse represents an error message returned by the API
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse represents an informational message returned by the API
type InfoResponse struct {
	Message string `json:"message"`
}
