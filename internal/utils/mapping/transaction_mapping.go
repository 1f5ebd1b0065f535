package mapping

import (
	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/SscSPs/psbook/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:  d.TransactionID,
		ShopID:         d.ShopID,
		EmployeeID:     d.EmployeeID,
		Amount:         d.Amount,
		PaymentMode:    string(d.PaymentMode),
		Reference:      d.Reference,
		Status:         string(d.Status),
		Note:           d.Note,
		CollectedAt:    d.CollectedAt,
		IsVerified:     d.IsVerified,
		VerifiedBy:     d.VerifiedBy,
		VerifiedAt:     d.VerifiedAt,
		ReversedBy:     d.ReversedBy,
		ReversedAt:     d.ReversedAt,
		ReversalReason: d.ReversalReason,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.Location != nil {
		lat, lng := d.Location.Latitude, d.Location.Longitude
		m.Latitude = &lat
		m.Longitude = &lng
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:  m.TransactionID,
		ShopID:         m.ShopID,
		EmployeeID:     m.EmployeeID,
		Amount:         m.Amount,
		PaymentMode:    domain.PaymentMode(m.PaymentMode),
		Reference:      m.Reference,
		Status:         domain.TransactionStatus(m.Status),
		Note:           m.Note,
		CollectedAt:    m.CollectedAt,
		IsVerified:     m.IsVerified,
		VerifiedBy:     m.VerifiedBy,
		VerifiedAt:     m.VerifiedAt,
		ReversedBy:     m.ReversedBy,
		ReversedAt:     m.ReversedAt,
		ReversalReason: m.ReversalReason,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.Latitude != nil && m.Longitude != nil {
		d.Location = &domain.GeoPoint{Latitude: *m.Latitude, Longitude: *m.Longitude}
	}
	return d
}

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		ShopID:        d.ShopID,
		InvoiceNumber: d.InvoiceNumber,
		Amount:        d.Amount,
		IssueDate:     d.IssueDate,
		Note:          d.Note,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		ShopID:        m.ShopID,
		InvoiceNumber: m.InvoiceNumber,
		Amount:        m.Amount,
		IssueDate:     m.IssueDate,
		Note:          m.Note,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSettlement converts a domain Settlement to a model Settlement
func ToModelSettlement(d domain.Settlement) models.Settlement {
	m := models.Settlement{
		SettlementID:   d.SettlementID,
		EmployeeID:     d.EmployeeID,
		ExpectedAmount: d.ExpectedAmount,
		Status:         string(d.Status),
		TransactionIDs: d.TransactionIDs,
		ReceivedBy:     d.ReceivedBy,
		ReceivedAt:     d.ReceivedAt,
		Note:           d.Note,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.ReceivedAmount != nil {
		m.ReceivedAmount = decimal.NewNullDecimal(*d.ReceivedAmount)
	}
	if d.Variance != nil {
		m.Variance = decimal.NewNullDecimal(*d.Variance)
	}
	if m.TransactionIDs == nil {
		m.TransactionIDs = []string{}
	}
	return m
}

// ToDomainSettlement converts a model Settlement to a domain Settlement
func ToDomainSettlement(m models.Settlement) domain.Settlement {
	d := domain.Settlement{
		SettlementID:   m.SettlementID,
		EmployeeID:     m.EmployeeID,
		ExpectedAmount: m.ExpectedAmount,
		Status:         domain.SettlementStatus(m.Status),
		TransactionIDs: m.TransactionIDs,
		ReceivedBy:     m.ReceivedBy,
		ReceivedAt:     m.ReceivedAt,
		Note:           m.Note,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.ReceivedAmount.Valid {
		received := m.ReceivedAmount.Decimal
		d.ReceivedAmount = &received
	}
	if m.Variance.Valid {
		variance := m.Variance.Decimal
		d.Variance = &variance
	}
	return d
}
