package handlers

import (
	"github.com/crediflow/crediflow-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Loan         *LoanHandler
	Regrading    *RegradingHandler
	Provisioning *ProvisioningHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Loan:         NewLoanHandler(svcs.Loan),
		Regrading:    NewRegradingHandler(svcs.Regrading),
		Provisioning: NewProvisioningHandler(svcs.Provisioning),
	}
}
