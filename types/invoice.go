package types

import "strings"

type InvoiceItemRequest struct {
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type InvoiceCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
}

type CreateInvoiceRequest struct {
	OrderRef      string               `json:"orderRef"`
	TransactionID *uint                `json:"transactionId"`
	PaymentMethod string               `json:"paymentMethod"`
	PaymentStatus string               `json:"paymentStatus"`
	Customer      InvoiceCustomer      `json:"customer"`
	Items         []InvoiceItemRequest `json:"items"`
	Discount      float64              `json:"discount"`
	GSTRate       float64              `json:"gstRate"`
}

func (r *CreateInvoiceRequest) Validate() string {
	if strings.TrimSpace(r.Customer.Name) == "" {
		return "Customer name is required"
	}
	if len(r.Items) == 0 {
		return "At least one item is required"
	}
	for _, item := range r.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			return "Item product name is required"
		}
		if item.Quantity <= 0 {
			return "Item quantity must be positive"
		}
		if item.Price < 0 {
			return "Item price must not be negative"
		}
	}
	if r.Discount < 0 {
		return "Discount must not be negative"
	}
	if r.PaymentStatus != "" && r.PaymentStatus != "Paid" && r.PaymentStatus != "Unpaid" && r.PaymentStatus != "Cancelled" {
		return "Payment status must be Paid, Unpaid or Cancelled"
	}
	return ""
}

type UpdateInvoiceStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
	Status        string `json:"status"`
}
