package salary

import (
	"time"

	"finoffice/models/user"
)

// SalaryRecord is one user's payroll entry for a month. The composite unique
// index makes the store reject duplicate (user, month, year) rows; the upsert
// path replaces the existing row instead.
type SalaryRecord struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint    `gorm:"not null;uniqueIndex:idx_salary_user_period" json:"userId"`
	Month       int     `gorm:"not null;uniqueIndex:idx_salary_user_period" json:"month"`
	Year        int     `gorm:"not null;uniqueIndex:idx_salary_user_period" json:"year"`
	BasicSalary float64 `gorm:"type:decimal(12,2);not null" json:"basicSalary"`
	Bonus       float64 `gorm:"type:decimal(12,2);default:0.00" json:"bonus"`
	Deductions  float64 `gorm:"type:decimal(12,2);default:0.00" json:"deductions"`
	NetSalary   float64 `gorm:"type:decimal(12,2);not null" json:"netSalary"`
	Status      string  `gorm:"size:20;index;default:'Pending'" json:"status"` // Pending, Paid
	PaidDate    *time.Time `json:"paidDate,omitempty"`
	Notes       string  `gorm:"size:512" json:"notes"`
	CreatedByID *uint   `gorm:"index" json:"createdById,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`

	User      *user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	CreatedBy *user.User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"createdBy,omitempty"`
}
