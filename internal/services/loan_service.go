package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/crediflow/crediflow-api/internal/models"
	"github.com/crediflow/crediflow-api/internal/repository"
)

// LoanService handles loan read access for handlers and jobs
type LoanService struct {
	repo repository.LoanRepository
}

// NewLoanService creates a new loan service
func NewLoanService(repo repository.LoanRepository) *LoanService {
	return &LoanService{repo: repo}
}

// FindByIDWithSchedule loads a loan with its installments and ledger
func (s *LoanService) FindByIDWithSchedule(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.repo.FindByIDWithSchedule(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load loan: %w", err)
	}
	return loan, nil
}

// Ledger returns the loan's repayment events, deleted ones included so
// auditors see the full history
func (s *LoanService) Ledger(ctx context.Context, id uint) ([]models.RepaymentEvent, error) {
	loan, err := s.FindByIDWithSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	return loan.Events, nil
}

// CountOverdueInstallments counts open installments past due across
// active loans; used by the scheduled exposure report
func (s *LoanService) CountOverdueInstallments(ctx context.Context, asOf time.Time) (int64, error) {
	return s.repo.CountOverdueInstallments(ctx, asOf)
}
