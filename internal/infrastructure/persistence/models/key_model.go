package models

import (
	"time"

	"rsa_forge_service/internal/domain/keys"
)

// KeyMetaModel is the GORM database model for key metadata (infrastructure concern)
type KeyMetaModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	KeyPairID       string    `gorm:"not null;index;type:uuid"`
	Type            string    `gorm:"type:varchar(20)"`
	KeyLen          uint32    `gorm:"type:integer"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (KeyMetaModel) TableName() string {
	return "rsa_keys"
}

// ToDomain converts GORM model to domain entity
func (m *KeyMetaModel) ToDomain() *keys.KeyMeta {
	return &keys.KeyMeta{
		ID:              m.ID,
		KeyPairID:       m.KeyPairID,
		Type:            m.Type,
		KeyLen:          m.KeyLen,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *KeyMetaModel) FromDomain(k *keys.KeyMeta) {
	m.ID = k.ID
	m.KeyPairID = k.KeyPairID
	m.Type = k.Type
	m.KeyLen = k.KeyLen
	m.DateTimeCreated = k.DateTimeCreated
}
