package repository

import (
	"context"

	"github.com/crediflow/crediflow-api/internal/models"

	"gorm.io/gorm"
)

// ProvisioningRateRepository defines the interface for provisioning band
// data access
type ProvisioningRateRepository interface {
	FindAll(ctx context.Context) ([]models.ProvisioningRate, error)
}

// provisioningRateRepository handles database operations for provisioning
// rates
type provisioningRateRepository struct {
	db *gorm.DB
}

// NewProvisioningRateRepository creates a new provisioning rate repository
func NewProvisioningRateRepository(db *gorm.DB) ProvisioningRateRepository {
	return &provisioningRateRepository{db: db}
}

// FindAll retrieves every band in table order. Lookup semantics are
// first-match-wins, so the stored order is the contract.
func (r *provisioningRateRepository) FindAll(ctx context.Context) ([]models.ProvisioningRate, error) {
	var rates []models.ProvisioningRate
	err := r.db.WithContext(ctx).
		Order("number ASC, id ASC").
		Find(&rates).Error
	return rates, err
}
