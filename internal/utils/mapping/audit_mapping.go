package mapping

import (
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	"github.com/freightdesk/freight_approval_app/internal/models"
)

// ToDomainAuditEntry converts a model AuditEntry to its domain form.
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:      m.AuditID,
		OrderID:      m.OrderID,
		ActorID:      m.ActorID,
		Kind:         domain.AuditActionKind(m.Kind),
		LevelReached: m.LevelReached,
		Comment:      m.Comment,
		RecordedAt:   m.RecordedAt,
	}
}

// ToDomainAuditEntrySlice converts a slice of model audit entries.
func ToDomainAuditEntrySlice(ms []models.AuditEntry) []domain.AuditEntry {
	ds := make([]domain.AuditEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditEntry(m)
	}
	return ds
}

// ToDomainApprover converts a model Approver to its domain form.
func ToDomainApprover(m models.Approver) domain.Approver {
	return domain.Approver{
		Level:       m.Level,
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
		Email:       m.Email,
	}
}
