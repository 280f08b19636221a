package invoice

import (
	"time"

	"finoffice/models/transaction"
	"finoffice/models/user"
)

type Invoice struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceNumber string `gorm:"size:50;uniqueIndex;not null" json:"invoiceNumber"` // INV/{year}/{6-digit seq}
	OrderRef      string `gorm:"size:255;index" json:"orderRef"`
	TransactionID *uint  `gorm:"index" json:"transactionId,omitempty"`
	PaymentMethod string `gorm:"size:50" json:"paymentMethod"`
	PaymentStatus string `gorm:"size:20;index;default:'Unpaid'" json:"paymentStatus"` // Paid, Unpaid, Cancelled
	Status        string `gorm:"size:20;index;default:'Active'" json:"status"`        // Active, Cancelled

	// Company snapshot taken at creation time so later profile edits do not
	// rewrite history.
	CompanyName    string `gorm:"size:255" json:"companyName"`
	CompanyAddress string `gorm:"size:512" json:"companyAddress"`
	CompanyPhone   string `gorm:"size:50" json:"companyPhone"`
	CompanyEmail   string `gorm:"size:255" json:"companyEmail"`
	CompanyGSTIN   string `gorm:"size:30" json:"companyGstin"`

	// Customer snapshot.
	CustomerName    string `gorm:"size:255;index" json:"customerName"`
	CustomerEmail   string `gorm:"size:255;index" json:"customerEmail"`
	CustomerPhone   string `gorm:"size:50" json:"customerPhone"`
	CustomerAddress string `gorm:"size:512" json:"customerAddress"`
	CustomerGSTIN   string `gorm:"size:30" json:"customerGstin"`

	Subtotal   float64 `gorm:"type:decimal(12,2)" json:"subtotal"`
	Discount   float64 `gorm:"type:decimal(12,2)" json:"discount"`
	CGST       float64 `gorm:"type:decimal(12,2)" json:"cgst"`
	SGST       float64 `gorm:"type:decimal(12,2)" json:"sgst"`
	GrandTotal float64 `gorm:"type:decimal(12,2)" json:"grandTotal"`

	CreatedByID *uint `gorm:"index" json:"createdById,omitempty"`

	AccessRequested   bool       `gorm:"default:false;index" json:"invoiceAccessRequested"`
	AccessRequestedBy *uint      `gorm:"index" json:"invoiceAccessRequestedBy,omitempty"`
	AccessRequestedAt *time.Time `json:"invoiceAccessRequestedAt,omitempty"`
	AccessApproved    bool       `gorm:"default:false;index" json:"invoiceAccessApproved"`
	AccessApprovedBy  *uint      `gorm:"index" json:"invoiceAccessApprovedBy,omitempty"`
	AccessApprovedAt  *time.Time `json:"invoiceAccessApprovedAt,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`

	Items       []InvoiceItem            `gorm:"foreignKey:InvoiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	Transaction *transaction.Transaction `gorm:"foreignKey:TransactionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"transaction,omitempty"`
	CreatedBy   *user.User               `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"createdBy,omitempty"`
}

type InvoiceItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceID   uint    `gorm:"index;not null" json:"invoiceId"`
	ProductName string  `gorm:"size:255;not null" json:"productName"`
	Quantity    float64 `gorm:"type:decimal(12,2);not null" json:"quantity"`
	Price       float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	Total       float64 `gorm:"type:decimal(12,2);not null" json:"total"`
}

// InvoiceCounter holds the per-year sequence behind invoice numbers. Rows are
// bumped under a row lock so concurrent creates cannot mint the same number.
type InvoiceCounter struct {
	ID   uint `gorm:"primaryKey;autoIncrement"`
	Year int  `gorm:"uniqueIndex;not null"`
	Seq  int  `gorm:"not null;default:0"`
}
