package types

import "strings"

type TransactionRequest struct {
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"type"`
	Category      string  `json:"category"`
	PaymentMethod string  `json:"paymentMethod"`
	BankAccountID *uint   `json:"bankAccountId"`
	HandCashID    *uint   `json:"handCashId"`
	Date          string  `json:"date"`
}

func (r *TransactionRequest) Validate() string {
	if strings.TrimSpace(r.Description) == "" {
		return "Description is required"
	}
	if r.Amount < 0 {
		return "Amount must not be negative"
	}
	if r.Type != "Income" && r.Type != "Expense" {
		return "Type must be Income or Expense"
	}
	if strings.TrimSpace(r.Category) == "" {
		return "Category is required"
	}
	if r.PaymentMethod != "" && r.PaymentMethod != "Bank Account" && r.PaymentMethod != "Hand Cash" {
		return "Payment method must be Bank Account or Hand Cash"
	}
	return ""
}

type BankAccountRequest struct {
	Name          string  `json:"name"`
	AccountNumber string  `json:"accountNumber"`
	BankName      string  `json:"bankName"`
	Balance       float64 `json:"balance"`
}

func (r *BankAccountRequest) Validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "Name is required"
	}
	if strings.TrimSpace(r.AccountNumber) == "" {
		return "Account number is required"
	}
	if strings.TrimSpace(r.BankName) == "" {
		return "Bank name is required"
	}
	return ""
}

type HandCashRequest struct {
	Holder      string  `json:"holder"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

func (r *HandCashRequest) Validate() string {
	if strings.TrimSpace(r.Holder) == "" {
		return "Holder is required"
	}
	if r.Amount < 0 {
		return "Amount must not be negative"
	}
	if r.Type != "Income" && r.Type != "Expense" {
		return "Type must be Income or Expense"
	}
	return ""
}

type DebtRequest struct {
	Debtor      string  `json:"debtor"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"dueDate"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

func (r *DebtRequest) Validate() string {
	if strings.TrimSpace(r.Debtor) == "" {
		return "Debtor is required"
	}
	if r.Amount < 0 {
		return "Amount must not be negative"
	}
	if r.Status != "" && r.Status != "Pending" && r.Status != "Paid" {
		return "Status must be Pending or Paid"
	}
	return ""
}
