package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Invoice records an amount a shop owes. InvoiceNumber is unique across all shops.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	ShopID        string          `json:"shopID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Amount        decimal.Decimal `json:"amount"`
	IssueDate     string          `json:"issueDate"` // YYYY-MM-DD
	Note          string          `json:"note"`
	AuditFields
}

// NormalizeInvoiceNumber is the form invoice numbers are compared in.
func NormalizeInvoiceNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}
