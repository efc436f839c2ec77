package models

import "time"

// GameResult is the persisted outcome of a finished group game.
type GameResult struct {
	ID           uint      `gorm:"primaryKey"`
	GroupID      int64     `gorm:"not null;index"`
	Mode         string    `gorm:"type:varchar(20);not null"`
	Player1Name  string    `gorm:"type:varchar(128)"`
	Player1Score int       `gorm:"default:0"`
	Player2Name  string    `gorm:"type:varchar(128)"`
	Player2Score int       `gorm:"default:0"`
	WinnerName   string    `gorm:"type:varchar(128)"` // empty on a tie
	IsTie        bool      `gorm:"default:false"`
	Forfeit      bool      `gorm:"default:false"`
	FinishedAt   time.Time `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (GameResult) TableName() string {
	return "game_results"
}
