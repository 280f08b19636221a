package bankaccount

import "time"

// BankAccount is a tracked account. Balance is maintained by explicit edits,
// not by transaction postings; the BankAccountID reference on transactions is
// informational only.
type BankAccount struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	AccountNumber string     `gorm:"size:50;uniqueIndex;not null" json:"accountNumber"`
	BankName      string     `gorm:"size:255;not null" json:"bankName"`
	Balance       float64    `gorm:"type:decimal(12,2);default:0.00" json:"balance"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`
}
