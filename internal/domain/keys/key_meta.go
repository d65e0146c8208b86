package keys

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// KeyMeta holds the metadata of a single piece of stored key material. A
// generated key pair produces three entries sharing one KeyPairID: the full
// key and its public and private projections.
type KeyMeta struct {
	ID              string    `validate:"required,uuid4"`
	KeyPairID       string    `validate:"required,uuid4"`
	Type            string    `validate:"required,oneof=full public private"`
	KeyLen          uint32    `validate:"required"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating KeyMeta struct
func (k *KeyMeta) Validate() error {
	validate := validator.New()

	err := validate.Struct(k)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// KeyMetaQuery filters, sorts and paginates key metadata listings.
type KeyMetaQuery struct {
	Type            string    `validate:"omitempty,oneof=full public private"`
	DateTimeCreated time.Time `validate:"omitempty"`

	Limit  int `validate:"omitempty,gte=1"`
	Offset int `validate:"omitempty,gte=0"`

	SortBy    string `validate:"omitempty,oneof=key_len type date_time_created"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewKeyMetaQuery creates a query with no filters applied.
func NewKeyMetaQuery() *KeyMetaQuery {
	return &KeyMetaQuery{}
}

// Validate for validating KeyMetaQuery struct
func (q *KeyMetaQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for KeyMetaQuery: %w", err)
	}

	return nil
}
