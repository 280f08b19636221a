package transaction

import (
	"time"

	"finoffice/models/user"
)

// Transaction is a single income or expense entry. Amount is always a
// non-negative magnitude; direction is carried by Type.
type Transaction struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Description   string  `gorm:"size:512;not null" json:"description"`
	Amount        float64 `gorm:"type:decimal(12,2);not null" json:"amount"`
	Type          string  `gorm:"size:20;index;not null" json:"type"`     // Income, Expense
	Category      string  `gorm:"size:255;index;not null" json:"category"`
	PaymentMethod string  `gorm:"size:50;index" json:"paymentMethod"` // Bank Account, Hand Cash
	BankAccountID *uint   `gorm:"index" json:"bankAccountId,omitempty"`
	HandCashID    *uint   `gorm:"index" json:"handCashId,omitempty"`
	Date          time.Time `gorm:"index;not null" json:"date"`

	// Invoice access workflow flags. Requested/Approved pairs carry the actor
	// and timestamp of the last transition.
	InvoiceAccessRequested   bool       `gorm:"default:false;index" json:"invoiceAccessRequested"`
	InvoiceAccessRequestedBy *uint      `gorm:"index" json:"invoiceAccessRequestedBy,omitempty"`
	InvoiceAccessRequestedAt *time.Time `json:"invoiceAccessRequestedAt,omitempty"`
	InvoiceAccessApproved    bool       `gorm:"default:false;index" json:"invoiceAccessApproved"`
	InvoiceAccessApprovedBy  *uint      `gorm:"index" json:"invoiceAccessApprovedBy,omitempty"`
	InvoiceAccessApprovedAt  *time.Time `json:"invoiceAccessApprovedAt,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`

	Requester *user.User `gorm:"foreignKey:InvoiceAccessRequestedBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"requester,omitempty"`
	Approver  *user.User `gorm:"foreignKey:InvoiceAccessApprovedBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"approver,omitempty"`
}

// DeletedTransaction is the recycle-bin snapshot of a hard-deleted transaction.
// Rows are append-only; nothing ever mutates them after insertion.
type DeletedTransaction struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OriginalID    uint      `gorm:"index;not null" json:"originalId"`
	Description   string    `gorm:"size:512" json:"description"`
	Amount        float64   `gorm:"type:decimal(12,2)" json:"amount"`
	Type          string    `gorm:"size:20;index" json:"type"`
	Category      string    `gorm:"size:255;index" json:"category"`
	PaymentMethod string    `gorm:"size:50" json:"paymentMethod"`
	Date          time.Time `json:"date"`
	DeletedBy     *uint     `gorm:"index" json:"deletedBy,omitempty"`
	DeletedAt     time.Time `gorm:"autoCreateTime;index" json:"deletedAt"`
}
