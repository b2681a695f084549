package services

import (
	"context"
	"fmt"

	"github.com/crediflow/crediflow-api/internal/models"
	"github.com/crediflow/crediflow-api/internal/repository"
)

// ProvisioningService builds per-session provisioning tables and resolves
// band lookups
type ProvisioningService struct {
	repo repository.ProvisioningRateRepository
}

// NewProvisioningService creates a new provisioning service
func NewProvisioningService(repo repository.ProvisioningRateRepository) *ProvisioningService {
	return &ProvisioningService{repo: repo}
}

// TableForSession loads the bands and builds a table owned by the calling
// session
func (s *ProvisioningService) TableForSession(ctx context.Context) (*ProvisionTable, error) {
	rates, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load provisioning rates: %w", err)
	}
	return NewProvisionTable(rates), nil
}

// GetRate resolves a band by rank
func (s *ProvisioningService) GetRate(ctx context.Context, rank int) (*models.ProvisioningRate, error) {
	table, err := s.TableForSession(ctx)
	if err != nil {
		return nil, err
	}
	rate, ok := table.GetRate(rank)
	if !ok {
		return nil, ErrNotFound
	}
	return rate, nil
}

// GetRateByDaysLate resolves a band by days late
func (s *ProvisioningService) GetRateByDaysLate(ctx context.Context, days int) (*models.ProvisioningRate, error) {
	table, err := s.TableForSession(ctx)
	if err != nil {
		return nil, err
	}
	rate, ok := table.GetRateByDaysLate(days)
	if !ok {
		return nil, ErrNotFound
	}
	return rate, nil
}

// List returns every band in table order
func (s *ProvisioningService) List(ctx context.Context) ([]models.ProvisioningRate, error) {
	return s.repo.FindAll(ctx)
}
