package models

import "time"

// CapitalQuestion is one imported capital-city quiz entry. The built-in pool
// is used when this table is empty.
type CapitalQuestion struct {
	ID        uint      `gorm:"primaryKey"`
	Country   string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Capital   string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CapitalQuestion) TableName() string {
	return "capital_questions"
}
