package pgsql

import (
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrderRepo:       newPgxOrderRepository(dbPool),
		AuditRepo:       newPgxAuditRepository(dbPool),
		ApproverRepo:    newPgxApproverRepository(dbPool),
		ActionTokenRepo: newPgxActionTokenRepository(dbPool),
		EditTokenRepo:   newPgxEditTokenRepository(dbPool),
	}
}
