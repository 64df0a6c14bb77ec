package mapping

import (
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	"github.com/freightdesk/freight_approval_app/internal/models"
)

// ToModelOrder converts a domain Order to a model Order, unfolding the
// tagged status into the act_approv / rejected column pair.
func ToModelOrder(d domain.Order) models.Order {
	m := models.Order{
		OrderID:       d.OrderID,
		RequesterID:   d.RequesterID,
		Plant:         d.Plant,
		Carrier:       d.Carrier,
		Description:   d.Description,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		RequiredLevel: d.RequiredLevel,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if level, ok := d.Status.Level(); ok {
		m.ActApprov = level
	} else {
		m.Rejected = true
	}
	return m
}

// ToDomainOrder converts a model Order to a domain Order, folding the column
// pair back into the tagged status.
func ToDomainOrder(m models.Order) domain.Order {
	status := domain.StatusInProgress(m.ActApprov)
	if m.Rejected {
		status = domain.StatusRejected()
	}
	return domain.Order{
		OrderID:       m.OrderID,
		RequesterID:   m.RequesterID,
		Plant:         m.Plant,
		Carrier:       m.Carrier,
		Description:   m.Description,
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		RequiredLevel: m.RequiredLevel,
		Status:        status,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCorrectiveAction converts a model CorrectiveAction to its domain form.
func ToDomainCorrectiveAction(m models.CorrectiveAction) domain.CorrectiveAction {
	return domain.CorrectiveAction{
		CorrectiveActionID: m.CorrectiveActionID,
		OrderID:            m.OrderID,
		EditTokenID:        m.EditTokenID,
		Summary:            m.Summary,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
