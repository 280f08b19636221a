package handcash

import "time"

type HandCash struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Holder      string     `gorm:"size:255;index;not null" json:"holder"`
	Amount      float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Type        string     `gorm:"size:20;index;not null" json:"type"` // Income, Expense
	Description string     `gorm:"size:512" json:"description"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`
}
