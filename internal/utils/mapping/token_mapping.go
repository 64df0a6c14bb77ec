package mapping

import (
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	"github.com/freightdesk/freight_approval_app/internal/models"
)

// ToDomainActionToken converts a model ActionToken to its domain form.
func ToDomainActionToken(m models.ActionToken) domain.ActionToken {
	d := domain.ActionToken{
		TokenID:     m.TokenID,
		TokenHash:   m.TokenHash,
		OrderID:     m.OrderID,
		Intent:      domain.ActionIntent(m.Intent),
		RecipientID: m.RecipientID,
		ExpiresAt:   m.ExpiresAt,
		ConsumedAt:  m.ConsumedAt,
		CreatedAt:   m.CreatedAt,
	}
	if m.ConsumedBy != nil {
		d.ConsumedBy = *m.ConsumedBy
	}
	return d
}

// ToDomainBulkActionToken converts a model BulkActionToken to its domain form.
func ToDomainBulkActionToken(m models.BulkActionToken) domain.BulkActionToken {
	d := domain.BulkActionToken{
		TokenID:     m.TokenID,
		TokenHash:   m.TokenHash,
		OrderIDs:    m.OrderIDs,
		RecipientID: m.RecipientID,
		ExpiresAt:   m.ExpiresAt,
		ConsumedAt:  m.ConsumedAt,
		CreatedAt:   m.CreatedAt,
	}
	if m.ConsumedBy != nil {
		d.ConsumedBy = *m.ConsumedBy
	}
	return d
}

// ToDomainEditRequestToken converts a model EditRequestToken to its domain form.
func ToDomainEditRequestToken(m models.EditRequestToken) domain.EditRequestToken {
	d := domain.EditRequestToken{
		TokenID:     m.TokenID,
		OrderID:     m.OrderID,
		RequesterID: m.RequesterID,
		Status:      domain.EditTokenStatus(m.Status),
		ApprovedAt:  m.ApprovedAt,
		ValidatedAt: m.ValidatedAt,
		UsedAt:      m.UsedAt,
		CreatedAt:   m.CreatedAt,
	}
	if m.ApprovedBy != nil {
		d.ApprovedBy = *m.ApprovedBy
	}
	return d
}
