package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crediflow/crediflow-api/internal/jobs"
	"github.com/crediflow/crediflow-api/internal/models"
	"github.com/crediflow/crediflow-api/internal/repository"
	"github.com/crediflow/crediflow-api/internal/statemachine"
	"github.com/crediflow/crediflow-api/pkg/logger"
)

// RegradingService answers "what single payment on date D fully settles
// this loan under the contract's current options" and applies the
// resulting regrading.
type RegradingService struct {
	loanRepo  repository.LoanRepository
	userRepo  repository.UserRepository
	cache     *repository.QuoteCache
	scheduler LateFeeScheduler
	settings  ApplicationSettings
	worker    *jobs.Worker
}

// NewRegradingService creates a new regrading service
func NewRegradingService(
	loanRepo repository.LoanRepository,
	userRepo repository.UserRepository,
	cache *repository.QuoteCache,
	scheduler LateFeeScheduler,
	settings ApplicationSettings,
	worker *jobs.Worker,
) *RegradingService {
	return &RegradingService{
		loanRepo:  loanRepo,
		userRepo:  userRepo,
		cache:     cache,
		scheduler: scheduler,
		settings:  settings,
		worker:    worker,
	}
}

// MaximumAmountToRegrade computes the maximum amount a client may pay to
// fully regrade the loan as of payDate. Pure over its inputs except for
// the documented schedule correction on the real-schedule path.
func (s *RegradingService) MaximumAmountToRegrade(loan *models.Loan, opts *models.CreditContractOptions, payDate time.Time) decimal.Decimal {
	if opts.LoansType == models.LoanTypeDecliningFixedPrincipalReal {
		return s.maxAmountOfRealSchedule(loan, payDate)
	}

	// capital
	amount := loan.CalculateActualOlbAt(payDate)

	// interest
	if opts.CancelInterests {
		amount = amount.Add(opts.ManualInterestsAmount)
	} else {
		amount = amount.Add(loan.CalculateRemainingInterests(payDate))
	}

	// fees
	if opts.CancelFees {
		amount = amount.Add(opts.ManualFeesAmount)
		amount = amount.Add(opts.ManualCommissionAmount)
	} else {
		amount = amount.Add(s.LateAndAnticipatedFees(loan, opts, payDate))
	}

	// No floor at zero here: cancellation overrides may legitimately
	// produce any sign.
	decimalPoint := 0
	if loan.UseCents {
		decimalPoint = s.settings.InterestRateDecimalPlaces()
	}
	return amount.Round(int32(decimalPoint))
}

// maxAmountOfRealSchedule walks the installment schedule once, in number
// order, classifying each installment against payDate and accumulating
// unpaid capital and recomputed interest. The walk is order-dependent:
// every iteration reads the running day-count cursor and the previous
// installment's state.
func (s *RegradingService) maxAmountOfRealSchedule(loan *models.Loan, payDate time.Time) decimal.Decimal {
	olb := loan.CalculateActualOlb()
	actualOlb := loan.CalculateActualOlb()
	capitalRepayment := decimal.Zero
	interestPayment := decimal.Zero

	lastDateOfPayment := loan.GetLastRepaymentDate()
	daysInYear := decimal.NewFromInt(int64(s.settings.DaysInYear(loan.StartDate.Year())))
	roundingPoint := int32(0)
	if loan.UseCents {
		roundingPoint = 2
	}

	if loan.StartDate.After(lastDateOfPayment) {
		lastDateOfPayment = loan.StartDate
	}

	for i := 0; i < loan.NbOfInstallments(); i++ {
		installment := loan.GetInstallment(i)

		if installment.Repaid && lastDateOfPayment.Before(installment.ExpectedDate) {
			lastDateOfPayment = installment.ExpectedDate
		}

		// Capital bucket: exactly one trigger may fire per installment.
		calculated := false

		if installment.ExpectedDate.Before(payDate) {
			capitalRepayment = capitalRepayment.Add(installment.UnpaidCapital())
			calculated = true
		}

		if loan.StartDate.Before(payDate) && installment.Number == 1 && !calculated {
			capitalRepayment = capitalRepayment.Add(installment.UnpaidCapital())
			calculated = true
		}

		if installment.ExpectedDate.Equal(payDate) && !calculated {
			capitalRepayment = capitalRepayment.Add(installment.UnpaidCapital())
			calculated = true
		}

		// payDate falls between two installment dates with no installment
		// exactly on it: the next installment bridges the gap.
		if installment.Number > 1 &&
			!installment.ExpectedDate.Equal(loan.StartDate) &&
			installment.ExpectedDate.After(payDate) &&
			loan.GetInstallment(installment.Number-2).ExpectedDate.Before(payDate) &&
			!calculated {
			capitalRepayment = capitalRepayment.Add(installment.UnpaidCapital())
		}

		// Interest bucket, independent of the capital classification.
		if installment.Repaid || installment.InterestToPay().IsZero() {
			continue
		}

		if !installment.ExpectedDate.After(payDate) {
			calculatedInterests := decimal.Zero

			if installment.PaidInterests.IsPositive() &&
				installment.InterestsRepayment.GreaterThan(installment.PaidInterests) {
				calculatedInterests = installment.PaidInterests
			}

			// Out-of-band partial payment: interest was paid but no
			// capital. Salvage what should have accrued up to the last
			// payment at the OLB that held before this period began; if
			// the reconstructed OLB no longer matches the actual one,
			// fall back to the figure already paid so interest is not
			// compounded twice.
			if installment.PaidCapital.IsZero() &&
				installment.PaidInterests.IsPositive() &&
				!installment.PaidInterests.Equal(installment.InterestsRepayment) {
				dateOfInstallment := loan.StartDate
				if installment.Number != 1 {
					dateOfInstallment = loan.GetInstallment(installment.Number - 2).ExpectedDate
				}
				d := daysBetween(dateOfInstallment, lastDateOfPayment)
				olbBeforePayment := loan.CalculateActualOlbAt(dateOfInstallment)

				calculatedInterests = olbBeforePayment.
					Mul(loan.InterestRate).
					Div(daysInYear).
					Mul(decimal.NewFromInt(int64(d))).
					Round(roundingPoint)

				if installment.PaidInterests.LessThan(calculatedInterests) &&
					!actualOlb.Equal(olbBeforePayment) {
					calculatedInterests = installment.PaidInterests
				}
			}

			expectedDate := installment.ExpectedDate
			// Very late repayment of the final installment: interest
			// accrues for every day of delay, up to the settlement day.
			if installment.Number == loan.NbOfInstallments() &&
				installment.ExpectedDate.Before(payDate) &&
				installment.PaidCapital.IsZero() {
				expectedDate = payDate
			}

			days := daysBetween(lastDateOfPayment, expectedDate)
			accrued := olb.
				Mul(loan.InterestRate).
				Div(daysInYear).
				Mul(decimal.NewFromInt(int64(days))).
				Add(calculatedInterests).
				Round(roundingPoint)
			interestPayment = interestPayment.Add(accrued.Sub(installment.PaidInterests))
			lastDateOfPayment = installment.ExpectedDate
		}

		if installment.Number > 1 &&
			installment.ExpectedDate.After(payDate) &&
			loan.GetInstallment(installment.Number-2).ExpectedDate.Before(payDate) {
			paidInterests := installment.PaidInterests

			daySpan := daysBetween(lastDateOfPayment, payDate)
			if daySpan < 0 {
				daySpan = 0
			}

			// The period's scheduled interest is permanently corrected to
			// the days actually elapsed up to the settlement date.
			rescheduled := olb.
				Mul(loan.InterestRate).
				Mul(decimal.NewFromInt(int64(daySpan))).
				Div(daysInYear).
				Add(paidInterests).
				Round(roundingPoint)
			installment.RescheduleInterest(rescheduled)

			interestPayment = interestPayment.Add(rescheduled.Sub(paidInterests))
			lastDateOfPayment = installment.ExpectedDate
		}

		if installment.Number == 1 && installment.ExpectedDate.After(payDate) {
			daySpan := daysBetween(loan.StartDate, payDate)
			if daySpan < 0 {
				daySpan = 0
			}
			interest := olb.
				Mul(loan.InterestRate).
				Mul(decimal.NewFromInt(int64(daySpan))).
				Div(daysInYear)
			interestPayment = interestPayment.Add(interest.Round(roundingPoint).Sub(installment.PaidInterests))
		}
	}

	total := interestPayment.Add(capitalRepayment)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// LateAndAnticipatedFees computes what late and anticipated fees would
// apply as of the given date without mutating the caller's loan. The
// clone's settled installments are marked paid so the same clone can not
// double count if queried twice; the clone is discarded afterwards.
func (s *RegradingService) LateAndAnticipatedFees(loan *models.Loan, opts *models.CreditContractOptions, asOf time.Time) decimal.Decimal {
	fees := decimal.Zero
	clone := loan.Copy()
	s.scheduler.CalculateNewInstallmentsWithLateFees(clone, opts, asOf)
	for i := 0; i < clone.NbOfInstallments(); i++ {
		installment := clone.GetInstallment(i)
		if !installment.Repaid && !installment.ExpectedDate.After(asOf) {
			fees = fees.Add(installment.FeesUnpaid)
			installment.PaidCapital = installment.CapitalRepayment
			installment.PaidInterests = installment.InterestsRepayment
		}
	}
	return fees
}

// Quote loads the loan and computes the regrading amount, serving repeated
// requests from the cache.
func (s *RegradingService) Quote(ctx context.Context, loanID uint, opts *models.CreditContractOptions, payDate time.Time) (decimal.Decimal, error) {
	loan, err := s.loanRepo.FindByIDWithSchedule(ctx, loanID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load loan: %w", err)
	}
	if loan.NbOfInstallments() == 0 {
		return decimal.Zero, fmt.Errorf("loan %d has no installment schedule", loanID)
	}

	var key string
	if s.cache != nil {
		key = s.cache.Key(loan, opts, payDate)
		if amount, ok := s.cache.Get(ctx, key); ok {
			return amount, nil
		}
	}

	amount := s.MaximumAmountToRegrade(loan, opts, payDate)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, amount); err != nil {
			logger.Warn("Failed to cache regrading quote", "loan_id", loanID, "error", err)
		}
	}

	return amount, nil
}

// Regrade settles the loan with a single payment of the maximum regrading
// amount as of payDate: the settlement event is appended to the ledger,
// every open installment is marked repaid and the loan transitions to
// regraded.
func (s *RegradingService) Regrade(ctx context.Context, loanID uint, opts *models.CreditContractOptions, payDate time.Time, operatorID uint) (*models.RepaymentEvent, error) {
	loan, err := s.loanRepo.FindByIDWithSchedule(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load loan: %w", err)
	}
	if loan.NbOfInstallments() == 0 {
		return nil, fmt.Errorf("loan %d has no installment schedule", loanID)
	}

	lfsm := statemachine.NewLoanFSM(loan)
	if !lfsm.Can("regrade") {
		return nil, ErrLoanClosed
	}

	amount := s.MaximumAmountToRegrade(loan, opts, payDate)
	principal := loan.CalculateActualOlbAt(payDate)
	interests := amount.Sub(principal)

	comment := fmt.Sprintf("Regradación total del préstamo %s", loan.ContractCode)
	if operator, err := s.userRepo.FindByID(ctx, operatorID); err == nil {
		comment = fmt.Sprintf("%s por %s", comment, operator.FullName)
	}

	event := &models.RepaymentEvent{
		LoanID:    loan.ID,
		Reference: uuid.NewString(),
		Date:      payDate,
		Principal: principal,
		Interests: interests,
		Comment:   &comment,
	}

	for i := range loan.Installments {
		if !loan.Installments[i].Repaid {
			loan.Installments[i].MarkRepaid()
		}
	}

	if err := lfsm.Regrade(ctx); err != nil {
		return nil, fmt.Errorf("cannot regrade loan: %w", err)
	}
	now := time.Now()
	loan.ClosedAt = &now

	if err := s.loanRepo.SaveRegrading(ctx, loan, event); err != nil {
		return nil, fmt.Errorf("failed to save regrading: %w", err)
	}

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		logger.Info("Loan regraded",
			"loan_id", loan.ID,
			"contract_code", loan.ContractCode,
			"amount", amount.String(),
			"pay_date", payDate.Format("2006-01-02"),
			"operator_id", operatorID)
		return nil
	})

	return event, nil
}

// daysBetween returns the whole days elapsed from one calendar day to
// another; negative when to precedes from.
func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
