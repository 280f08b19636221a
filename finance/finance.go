// Package finance holds the money math shared by controllers and the PDF
// renderers: GST splits, invoice totals, display formatting and the invoice
// number scheme. Everything here is a pure function.
package finance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// GSTSplit splits a GST amount computed from subtotal at the given percentage
// rate into equal CGST and SGST halves, each rounded to two decimal places.
func GSTSplit(subtotal, rate float64) (cgst, sgst float64) {
	total := decimal.NewFromFloat(subtotal).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(100))
	half := total.Div(decimal.NewFromInt(2)).Round(2)
	f, _ := half.Float64()
	return f, f
}

// GrandTotal computes subtotal - discount + cgst + sgst rounded to two places.
func GrandTotal(subtotal, discount, cgst, sgst float64) float64 {
	total := decimal.NewFromFloat(subtotal).
		Sub(decimal.NewFromFloat(discount)).
		Add(decimal.NewFromFloat(cgst)).
		Add(decimal.NewFromFloat(sgst)).
		Round(2)
	f, _ := total.Float64()
	return f
}

// LineTotal is quantity times unit price, rounded to two places.
func LineTotal(quantity, price float64) float64 {
	total := decimal.NewFromFloat(quantity).
		Mul(decimal.NewFromFloat(price)).
		Round(2)
	f, _ := total.Float64()
	return f
}

// Subtotal sums already-rounded line totals.
func Subtotal(lineTotals []float64) float64 {
	sum := decimal.Zero
	for _, t := range lineTotals {
		sum = sum.Add(decimal.NewFromFloat(t))
	}
	f, _ := sum.Round(2).Float64()
	return f
}

// FormatCurrency renders an amount with two decimals and Indian digit
// grouping, e.g. 1234567.5 -> "12,34,567.50".
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}
	s := d.StringFixed(2)
	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	grouped := groupIndian(intPart)
	if neg {
		grouped = "-" + grouped
	}
	return grouped + "." + fracPart
}

// groupIndian inserts commas Indian style: last three digits, then pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

func twoDigits(n int) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}

func threeDigits(n int) string {
	if n >= 100 {
		s := onesWords[n/100] + " Hundred"
		if n%100 != 0 {
			s += " " + twoDigits(n%100)
		}
		return s
	}
	return twoDigits(n)
}

// AmountInWords renders a rupee amount in words using the Indian numbering
// system (lakh, crore), e.g. 51500 -> "Fifty One Thousand Five Hundred Rupees
// Only". Paise are appended when non-zero.
func AmountInWords(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	if d.IsNegative() {
		return "Minus " + AmountInWords(d.Neg().InexactFloat64())
	}
	rupees := d.IntPart()
	paise := d.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	words := integerInWords(rupees)
	if words == "" {
		words = "Zero"
	}
	out := words + " Rupees"
	if paise > 0 {
		out += " and " + twoDigits(int(paise)) + " Paise"
	}
	return out + " Only"
}

func integerInWords(n int64) string {
	if n == 0 {
		return ""
	}
	var parts []string
	crore := n / 10000000
	n %= 10000000
	lakh := n / 100000
	n %= 100000
	thousand := n / 1000
	n %= 1000

	if crore > 0 {
		parts = append(parts, integerInWords(crore)+" Crore")
	}
	if lakh > 0 {
		parts = append(parts, twoDigits(int(lakh))+" Lakh")
	}
	if thousand > 0 {
		parts = append(parts, twoDigits(int(thousand))+" Thousand")
	}
	if n > 0 {
		parts = append(parts, threeDigits(int(n)))
	}
	return strings.Join(parts, " ")
}

// FormatInvoiceNumber builds the canonical INV/{year}/{6-digit seq} number.
func FormatInvoiceNumber(year, seq int) string {
	return fmt.Sprintf("INV/%d/%06d", year, seq)
}

// ParseInvoiceNumber extracts (year, seq) from a canonical invoice number.
func ParseInvoiceNumber(number string) (year, seq int, err error) {
	if _, err = fmt.Sscanf(number, "INV/%d/%d", &year, &seq); err != nil {
		return 0, 0, fmt.Errorf("malformed invoice number %q: %w", number, err)
	}
	return year, seq, nil
}
