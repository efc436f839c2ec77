package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArchivedMessage is a copy of an inbound group message, kept so the original
// content can be reported after an edit or deletion.
type ArchivedMessage struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	ChatID     int64     `gorm:"not null;index:idx_archived_chat_msg"`
	MessageID  int       `gorm:"not null;index:idx_archived_chat_msg"`
	SenderID   int64     `gorm:"index"`
	SenderName string    `gorm:"type:varchar(128)"`
	Content    string    `gorm:"type:text"`
	MediaType  string    `gorm:"type:varchar(20);default:'text'"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

// Media type constants
const (
	MediaTypeText     = "text"
	MediaTypePhoto    = "photo"
	MediaTypeVideo    = "video"
	MediaTypeDocument = "document"
	MediaTypeSticker  = "sticker"
	MediaTypeVoice    = "voice"
)

func (m *ArchivedMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (ArchivedMessage) TableName() string {
	return "archived_messages"
}
