package pdf

import (
	"bytes"
	"testing"
	"time"

	"finoffice/models/invoice"
	"finoffice/models/transaction"
)

func sampleInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:            1,
		InvoiceNumber: "INV/2024/000001",
		CompanyName:   "Dwinsoft Technologies",
		CompanyEmail:  "accounts@dwinsoft.in",
		CustomerName:  "Acme Traders",
		CustomerEmail: "billing@acme.example",
		PaymentStatus: "Unpaid",
		Status:        "Active",
		Subtotal:      1000,
		Discount:      100,
		CGST:          90,
		SGST:          90,
		GrandTotal:    1080,
		CreatedAt:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Items: []invoice.InvoiceItem{
			{ProductName: "Widget", Quantity: 10, Price: 100, Total: 1000},
		},
	}
}

func TestRenderInvoice(t *testing.T) {
	data, err := RenderInvoice(sampleInvoice())
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty PDF output")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header, got %q", data[:8])
	}
}

func TestRenderInvoiceNoItems(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil
	data, err := RenderInvoice(inv)
	if err != nil {
		t.Fatalf("RenderInvoice with no items: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with PDF header")
	}
}

func TestRenderTransactionReceipt(t *testing.T) {
	tx := &transaction.Transaction{
		ID:            7,
		Description:   "Office Rent",
		Amount:        2000,
		Type:          "Expense",
		Category:      "Rent",
		PaymentMethod: "Bank Account",
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	data, err := RenderTransactionReceipt(tx)
	if err != nil {
		t.Fatalf("RenderTransactionReceipt: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with PDF header")
	}
}
