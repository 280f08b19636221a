// Package pdf renders invoices and transaction receipts. Rendering is a pure
// formatting step: it either produces the whole document or fails.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"finoffice/finance"
	"finoffice/models/invoice"
	"finoffice/models/transaction"
)

const (
	pageLeft   = 15.0
	tableWidth = 180.0
)

func newDocument(title string) *gofpdf.Fpdf {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.SetMargins(pageLeft, 15, 15)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()
	return doc
}

func separator(doc *gofpdf.Fpdf) {
	y := doc.GetY()
	doc.Line(pageLeft, y, pageLeft+tableWidth, y)
	doc.Ln(3)
}

// RenderInvoice produces the invoice PDF: header, company block, customer
// block, items table and the totals block with the amount in words.
func RenderInvoice(inv *invoice.Invoice) ([]byte, error) {
	doc := newDocument("Invoice " + inv.InvoiceNumber)

	doc.SetFont("Arial", "B", 18)
	doc.CellFormat(tableWidth, 10, "TAX INVOICE", "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(tableWidth, 6, inv.InvoiceNumber, "", 1, "C", false, 0, "")
	doc.CellFormat(tableWidth, 6, "Date: "+inv.CreatedAt.Format("02 Jan 2006"), "", 1, "C", false, 0, "")
	doc.Ln(4)
	separator(doc)

	// Company block.
	doc.SetFont("Arial", "B", 11)
	doc.CellFormat(90, 6, "From", "", 0, "L", false, 0, "")
	doc.CellFormat(90, 6, "Bill To", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 10)
	companyLines := []string{inv.CompanyName, inv.CompanyAddress, inv.CompanyPhone, inv.CompanyEmail}
	if inv.CompanyGSTIN != "" {
		companyLines = append(companyLines, "GSTIN: "+inv.CompanyGSTIN)
	}
	customerLines := []string{inv.CustomerName, inv.CustomerAddress, inv.CustomerPhone, inv.CustomerEmail}
	if inv.CustomerGSTIN != "" {
		customerLines = append(customerLines, "GSTIN: "+inv.CustomerGSTIN)
	}
	rows := len(companyLines)
	if len(customerLines) > rows {
		rows = len(customerLines)
	}
	for i := 0; i < rows; i++ {
		left, right := "", ""
		if i < len(companyLines) {
			left = companyLines[i]
		}
		if i < len(customerLines) {
			right = customerLines[i]
		}
		doc.CellFormat(90, 5, left, "", 0, "L", false, 0, "")
		doc.CellFormat(90, 5, right, "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	// Items table.
	doc.SetFont("Arial", "B", 10)
	doc.SetFillColor(240, 240, 240)
	doc.CellFormat(10, 7, "#", "1", 0, "C", true, 0, "")
	doc.CellFormat(80, 7, "Product", "1", 0, "L", true, 0, "")
	doc.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
	doc.CellFormat(30, 7, "Price", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 7, "Total", "1", 1, "R", true, 0, "")

	doc.SetFont("Arial", "", 10)
	for i, item := range inv.Items {
		doc.CellFormat(10, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		doc.CellFormat(80, 6, item.ProductName, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 6, finance.FormatCurrency(item.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 6, finance.FormatCurrency(item.Price), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 6, finance.FormatCurrency(item.Total), "1", 1, "R", false, 0, "")
	}
	doc.Ln(4)

	// Totals block.
	totals := []struct {
		label string
		value float64
	}{
		{"Subtotal", inv.Subtotal},
		{"Discount", inv.Discount},
		{"CGST", inv.CGST},
		{"SGST", inv.SGST},
		{"Grand Total", inv.GrandTotal},
	}
	for _, row := range totals {
		style := ""
		if row.label == "Grand Total" {
			style = "B"
		}
		doc.SetFont("Arial", style, 10)
		doc.CellFormat(145, 6, row.label, "", 0, "R", false, 0, "")
		doc.CellFormat(35, 6, finance.FormatCurrency(row.value), "1", 1, "R", false, 0, "")
	}
	doc.Ln(4)

	doc.SetFont("Arial", "I", 9)
	doc.MultiCell(tableWidth, 5, "Amount in words: "+finance.AmountInWords(inv.GrandTotal), "", "L", false)
	doc.Ln(2)
	separator(doc)

	doc.SetFont("Arial", "", 9)
	status := inv.PaymentStatus
	if inv.Status == "Cancelled" {
		status = "Cancelled"
	}
	doc.CellFormat(tableWidth, 5, "Payment status: "+status, "", 1, "L", false, 0, "")
	if inv.PaymentMethod != "" {
		doc.CellFormat(tableWidth, 5, "Payment method: "+inv.PaymentMethod, "", 1, "L", false, 0, "")
	}

	return output(doc)
}

// RenderTransactionReceipt produces a single-transaction receipt.
func RenderTransactionReceipt(tx *transaction.Transaction) ([]byte, error) {
	doc := newDocument(fmt.Sprintf("Transaction #%d", tx.ID))

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(tableWidth, 10, "TRANSACTION RECEIPT", "", 1, "C", false, 0, "")
	doc.Ln(4)
	separator(doc)

	doc.SetFont("Arial", "", 10)
	rows := [][2]string{
		{"Reference", fmt.Sprintf("TXN-%06d", tx.ID)},
		{"Date", tx.Date.Format("02 Jan 2006")},
		{"Description", tx.Description},
		{"Category", tx.Category},
		{"Type", tx.Type},
		{"Payment Method", tx.PaymentMethod},
		{"Amount", finance.FormatCurrency(tx.Amount)},
	}
	for _, row := range rows {
		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(50, 7, row[0], "1", 0, "L", false, 0, "")
		doc.SetFont("Arial", "", 10)
		doc.CellFormat(130, 7, row[1], "1", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	doc.SetFont("Arial", "I", 9)
	doc.MultiCell(tableWidth, 5, "Amount in words: "+finance.AmountInWords(tx.Amount), "", "L", false)

	return output(doc)
}

func output(doc *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
