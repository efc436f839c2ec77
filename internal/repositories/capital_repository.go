package repositories

import (
	"github.com/dreadedbot/group_games_bot/internal/models"
	"github.com/dreadedbot/group_games_bot/pkg/errors"
	"gorm.io/gorm"
)

type CapitalRepository struct {
	db *gorm.DB
}

func NewCapitalRepository(db *gorm.DB) *CapitalRepository {
	return &CapitalRepository{db: db}
}

// Upsert inserts or updates one country/capital pair.
func (r *CapitalRepository) Upsert(country, capital string) error {
	var existing models.CapitalQuestion
	err := r.db.Where("country = ?", country).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(&models.CapitalQuestion{Country: country, Capital: capital}).Error
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to look up capital question")
	}
	existing.Capital = capital
	return r.db.Save(&existing).Error
}

func (r *CapitalRepository) ListAll() ([]models.CapitalQuestion, error) {
	var questions []models.CapitalQuestion
	if err := r.db.Order("country ASC").Find(&questions).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load capital questions")
	}
	return questions, nil
}

func (r *CapitalRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.CapitalQuestion{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count capital questions")
	}
	return count, nil
}
