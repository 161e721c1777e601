package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate documents one completed TestAttempt. One-to-one with the attempt
// it references; created in the same transaction, never updated or deleted.
type Certificate struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string    `json:"user_id" gorm:"type:uuid;not null;index"`
	TestAttemptID string    `json:"test_attempt_id" gorm:"type:uuid;not null;uniqueIndex"`
	CertificateID string    `json:"certificate_id" gorm:"not null;uniqueIndex"` // e.g. CERT-ABCDEF12-3
	IssuedAt      time.Time `json:"issued_at" gorm:"autoCreateTime"`
	CreatedAt     time.Time `json:"created_at"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
