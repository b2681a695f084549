package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Loan             LoanRepository
	ProvisioningRate ProvisioningRateRepository
	User             UserRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Loan:             NewLoanRepository(db),
		ProvisioningRate: NewProvisioningRateRepository(db),
		User:             NewUserRepository(db),
	}
}
