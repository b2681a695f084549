package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/crediflow-api/internal/models"
)

// LateFeeScheduler rebuilds a loan's installments in place to reflect the
// late-fee-adjusted schedule as of a date. The regrading engine depends
// only on this contract; it never reimplements the scheduling algorithm
// and always hands it a private clone of the loan.
type LateFeeScheduler interface {
	CalculateNewInstallmentsWithLateFees(loan *models.Loan, opts *models.CreditContractOptions, asOf time.Time)
}

// StandardLateFeeScheduler charges a flat daily penalty on the overdue
// portion of each late installment, skipping non-working days.
type StandardLateFeeScheduler struct {
	dailyRate       decimal.Decimal
	nonWorkingDates *models.NonWorkingDates
}

// NewStandardLateFeeScheduler creates the default scheduler
func NewStandardLateFeeScheduler(dailyRate float64, nonWorkingDates *models.NonWorkingDates) *StandardLateFeeScheduler {
	if nonWorkingDates == nil {
		nonWorkingDates = models.NewNonWorkingDates()
	}
	return &StandardLateFeeScheduler{
		dailyRate:       decimal.NewFromFloat(dailyRate),
		nonWorkingDates: nonWorkingDates,
	}
}

// CalculateNewInstallmentsWithLateFees recomputes FeesUnpaid for every
// open installment due before asOf
func (s *StandardLateFeeScheduler) CalculateNewInstallmentsWithLateFees(loan *models.Loan, opts *models.CreditContractOptions, asOf time.Time) {
	if s.dailyRate.IsZero() {
		return
	}
	for i := 0; i < loan.NbOfInstallments(); i++ {
		installment := loan.GetInstallment(i)
		if installment.Repaid || !installment.ExpectedDate.Before(asOf) {
			continue
		}

		lateDays := s.workingDaysLate(installment.ExpectedDate, asOf)
		if lateDays == 0 {
			continue
		}

		base := installment.UnpaidCapital().Add(installment.InterestToPay())
		penalty := base.
			Mul(s.dailyRate).
			Mul(decimal.NewFromInt(int64(lateDays))).
			Round(2)
		installment.FeesUnpaid = penalty
	}
}

// workingDaysLate counts the working days strictly after the due date up
// to and including asOf
func (s *StandardLateFeeScheduler) workingDaysLate(dueDate, asOf time.Time) int {
	days := 0
	for d := dateOnly(dueDate).AddDate(0, 0, 1); !d.After(dateOnly(asOf)); d = d.AddDate(0, 0, 1) {
		if !s.nonWorkingDates.Contains(d) {
			days++
		}
	}
	return days
}
