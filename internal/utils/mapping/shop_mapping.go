package mapping

import (
	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/SscSPs/psbook/internal/models"
)

// ToModelShop converts a domain Shop to a model Shop
func ToModelShop(d domain.Shop) models.Shop {
	return models.Shop{
		ShopID:           d.ShopID,
		Name:             d.Name,
		Address:          d.Address,
		Phone:            d.Phone,
		Zone:             d.Zone,
		CurrentBalance:   d.CurrentBalance,
		RouteID:          d.RouteID,
		LastCollectionAt: d.LastCollectionAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
		DeletedAt:        d.DeletedAt,
	}
}

// ToDomainShop converts a model Shop to a domain Shop
func ToDomainShop(m models.Shop) domain.Shop {
	return domain.Shop{
		ShopID:           m.ShopID,
		Name:             m.Name,
		Address:          m.Address,
		Phone:            m.Phone,
		Zone:             m.Zone,
		CurrentBalance:   m.CurrentBalance,
		RouteID:          m.RouteID,
		LastCollectionAt: m.LastCollectionAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
		DeletedAt:        m.DeletedAt,
	}
}

// ToModelBalanceAuditLog converts a domain BalanceAuditLog to a model BalanceAuditLog
func ToModelBalanceAuditLog(d domain.BalanceAuditLog) models.BalanceAuditLog {
	return models.BalanceAuditLog{
		LogID:           d.LogID,
		ShopID:          d.ShopID,
		PreviousBalance: d.PreviousBalance,
		NewBalance:      d.NewBalance,
		ChangeAmount:    d.ChangeAmount,
		ChangeType:      string(d.ChangeType),
		ReferenceID:     d.ReferenceID,
		Note:            d.Note,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainBalanceAuditLog converts a model BalanceAuditLog to a domain BalanceAuditLog
func ToDomainBalanceAuditLog(m models.BalanceAuditLog) domain.BalanceAuditLog {
	return domain.BalanceAuditLog{
		LogID:           m.LogID,
		ShopID:          m.ShopID,
		PreviousBalance: m.PreviousBalance,
		NewBalance:      m.NewBalance,
		ChangeAmount:    m.ChangeAmount,
		ChangeType:      domain.ChangeType(m.ChangeType),
		ReferenceID:     m.ReferenceID,
		Note:            m.Note,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
		Sequence:        m.Sequence,
	}
}
