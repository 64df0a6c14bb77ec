package services

import (
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	portssvc "github.com/freightdesk/freight_approval_app/internal/core/ports/services"
	"github.com/freightdesk/freight_approval_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Approver directory first since the resolver depends on it
	container.Approver = NewApproverDirectoryService(repos.ApproverRepo, cfg.DBTimeout)

	// The token services share the resolver's transactional internals, so they
	// take the concrete type rather than the port
	resolver := newOrderStateResolver(repos.OrderRepo, repos.AuditRepo, container.Approver, cfg.DBTimeout)
	container.Resolver = resolver

	container.Order = NewOrderService(repos.OrderRepo, cfg.DBTimeout)
	container.AuditTrail = NewAuditTrailService(repos.AuditRepo, cfg.DBTimeout)
	container.ActionToken = newActionTokenService(repos.ActionTokenRepo, resolver, cfg.DBTimeout)
	container.EditToken = newEditTokenService(repos.EditTokenRepo, repos.OrderRepo, repos.AuditRepo, resolver, cfg.DBTimeout)

	return container
}

// Compile time interface implementation checks
var (
	_ portssvc.OrderStateResolverSvc = (*orderStateResolver)(nil)
	_ portssvc.ActionTokenSvcFacade  = (*actionTokenService)(nil)
	_ portssvc.EditTokenSvcFacade    = (*editTokenService)(nil)
)
