package debt

import "time"

type Debt struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Debtor      string     `gorm:"size:255;index;not null" json:"debtor"`
	Amount      float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	DueDate     *time.Time `gorm:"index" json:"dueDate,omitempty"`
	Description string     `gorm:"size:512" json:"description"`
	Status      string     `gorm:"size:20;index;default:'Pending'" json:"status"` // Pending, Paid
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`
}
