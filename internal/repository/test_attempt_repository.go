package repository

import (
	"github.com/lingocert/lingocert/internal/model"
	"gorm.io/gorm"
)

type TestAttemptRepository interface {
	FindByID(id string) (*model.TestAttempt, error)
	FindAllByUser(userID string) ([]model.TestAttempt, error)
	MaxAttemptNumber(userID string) (int, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) FindByID(id string) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.db.First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindAllByUser(userID string) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.db.Where("user_id = ?", userID).Order("attempt_number DESC").Find(&attempts).Error
	return attempts, err
}

func (r *testAttemptRepository) MaxAttemptNumber(userID string) (int, error) {
	var max int
	err := r.db.Model(&model.TestAttempt{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(attempt_number), 0)").
		Scan(&max).Error
	return max, err
}
