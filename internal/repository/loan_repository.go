package repository

import (
	"context"
	"time"

	"github.com/crediflow/crediflow-api/internal/models"

	"gorm.io/gorm"
)

// LoanRepository defines the interface for loan data access
type LoanRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Loan, error)
	FindByIDWithSchedule(ctx context.Context, id uint) (*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	SaveRegrading(ctx context.Context, loan *models.Loan, event *models.RepaymentEvent) error
	CountOverdueInstallments(ctx context.Context, asOf time.Time) (int64, error)
}

// loanRepository handles database operations for loans
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// FindByID retrieves a loan without its schedule or ledger
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// FindByIDWithSchedule retrieves a loan with its installment list and
// repayment ledger. Installments come back ordered by number so the
// real-schedule walk can rely on position; events come back in ledger
// order.
func (r *loanRepository) FindByIDWithSchedule(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, id ASC")
		}).
		First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Update persists loan changes
func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// SaveRegrading persists a regrading atomically: the settlement event, the
// settled installments and the loan status change commit or roll back
// together.
func (r *loanRepository) SaveRegrading(ctx context.Context, loan *models.Loan, event *models.RepaymentEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		for i := range loan.Installments {
			if err := tx.Save(&loan.Installments[i]).Error; err != nil {
				return err
			}
		}
		return tx.Save(loan).Error
	})
}

// CountOverdueInstallments counts unpaid installments due before asOf
// across active loans
func (r *loanRepository) CountOverdueInstallments(ctx context.Context, asOf time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Joins("JOIN loans ON loans.id = installments.loan_id").
		Where("loans.status = ?", models.LoanStatusActive).
		Where("installments.is_repaid = false AND installments.expected_date < ?", asOf).
		Count(&count).Error
	return count, err
}
