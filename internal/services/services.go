package services

import (
	"github.com/crediflow/crediflow-api/internal/config"
	"github.com/crediflow/crediflow-api/internal/jobs"
	"github.com/crediflow/crediflow-api/internal/models"
	"github.com/crediflow/crediflow-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Loan         *LoanService
	Regrading    *RegradingService
	Provisioning *ProvisioningService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, cache *repository.QuoteCache, worker *jobs.Worker, cfg *config.Config, nonWorkingDates *models.NonWorkingDates) *Services {
	settings := NewApplicationSettings(cfg)
	scheduler := NewStandardLateFeeScheduler(cfg.LateFeeDailyRate, nonWorkingDates)

	return &Services{
		Loan:         NewLoanService(repos.Loan),
		Regrading:    NewRegradingService(repos.Loan, repos.User, cache, scheduler, settings, worker),
		Provisioning: NewProvisioningService(repos.ProvisioningRate),
	}
}
