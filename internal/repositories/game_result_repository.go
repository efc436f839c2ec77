package repositories

import (
	"github.com/dreadedbot/group_games_bot/internal/models"
	"github.com/dreadedbot/group_games_bot/pkg/errors"
	"gorm.io/gorm"
)

type GameResultRepository struct {
	db *gorm.DB
}

func NewGameResultRepository(db *gorm.DB) *GameResultRepository {
	return &GameResultRepository{db: db}
}

func (r *GameResultRepository) Create(result *models.GameResult) error {
	if err := r.db.Create(result).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to save game result")
	}
	return nil
}

// GetRecentByGroup returns the latest finished games for a group.
func (r *GameResultRepository) GetRecentByGroup(groupID int64, limit int) ([]models.GameResult, error) {
	var results []models.GameResult
	err := r.db.Where("group_id = ?", groupID).
		Order("finished_at DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load game results")
	}
	return results, nil
}
