package repository

import (
	"github.com/lingocert/lingocert/internal/model"
	"gorm.io/gorm"
)

type CertificateRepository interface {
	FindByCertificateID(certificateID string) (*model.Certificate, error)
	FindByTestAttemptID(testAttemptID string) (*model.Certificate, error)
}

type certificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

func (r *certificateRepository) FindByCertificateID(certificateID string) (*model.Certificate, error) {
	var cert model.Certificate
	if err := r.db.First(&cert, "certificate_id = ?", certificateID).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *certificateRepository) FindByTestAttemptID(testAttemptID string) (*model.Certificate, error) {
	var cert model.Certificate
	if err := r.db.First(&cert, "test_attempt_id = ?", testAttemptID).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}
