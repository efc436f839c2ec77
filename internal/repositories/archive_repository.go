package repositories

import (
	"time"

	"github.com/dreadedbot/group_games_bot/internal/models"
	"github.com/dreadedbot/group_games_bot/pkg/errors"
	"gorm.io/gorm"
)

type ArchiveRepository struct {
	db *gorm.DB
}

func NewArchiveRepository(db *gorm.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Save stores a copy of an inbound message.
func (r *ArchiveRepository) Save(msg *models.ArchivedMessage) error {
	if err := r.db.Create(msg).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to archive message")
	}
	return nil
}

// GetByChatAndMessage returns the archived copy of one message.
func (r *ArchiveRepository) GetByChatAndMessage(chatID int64, messageID int) (*models.ArchivedMessage, error) {
	var msg models.ArchivedMessage
	result := r.db.Where("chat_id = ? AND message_id = ?", chatID, messageID).
		Order("created_at ASC").
		First(&msg)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "message not archived")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to load archived message")
	}

	return &msg, nil
}

// PurgeOlderThan deletes archive rows past the retention window and returns
// the number removed.
func (r *ArchiveRepository) PurgeOlderThan(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.ArchivedMessage{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to purge archive")
	}
	return result.RowsAffected, nil
}
