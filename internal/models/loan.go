package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan represents a disbursed credit contract with its amortization
// schedule and repayment ledger
type Loan struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	ContractCode   string          `gorm:"uniqueIndex;not null" json:"contract_code"`
	BorrowerUserID uint            `gorm:"not null;index" json:"borrower_user_id"`
	LoanType       string          `gorm:"default:declining_fixed;not null" json:"loan_type"`
	StartDate      time.Time       `gorm:"type:date;not null" json:"start_date"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	InterestRate   decimal.Decimal `gorm:"type:decimal(12,6);not null" json:"interest_rate"`
	UseCents       bool            `gorm:"default:true" json:"use_cents"`
	Status         string          `gorm:"default:active;not null;index" json:"status"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Associations. Installments are kept sorted ascending by expected
	// date with contiguous numbers starting at 1.
	Installments []Installment    `gorm:"foreignKey:LoanID" json:"installments,omitempty"`
	Events       []RepaymentEvent `gorm:"foreignKey:LoanID" json:"events,omitempty"`
}

// TableName specifies the table name for Loan
func (Loan) TableName() string {
	return "loans"
}

// Loan status constants
const (
	LoanStatusActive   = "active"
	LoanStatusRegraded = "regraded"
	LoanStatusClosed   = "closed"
)

// Loan type constants. Only the declining-fixed-principal-with-real-interest
// variant uses the real-schedule regrading algorithm.
const (
	LoanTypeFlat                        = "flat"
	LoanTypeDecliningFixed              = "declining_fixed"
	LoanTypeDecliningFixedPrincipal     = "declining_fixed_principal"
	LoanTypeDecliningFixedPrincipalReal = "declining_fixed_principal_real_interest"
)

// NbOfInstallments returns the schedule length
func (l *Loan) NbOfInstallments() int {
	return len(l.Installments)
}

// GetInstallment returns the installment at the given zero-based position.
// Out-of-range access panics: a loan without the expected schedule is a
// data-integrity defect in the caller, not a recoverable condition.
func (l *Loan) GetInstallment(i int) *Installment {
	return &l.Installments[i]
}

// CalculateActualOlb returns the outstanding loan balance after folding
// every non-deleted repayment event against the disbursed amount.
func (l *Loan) CalculateActualOlb() decimal.Decimal {
	olb := l.Amount
	for i := range l.Events {
		if l.Events[i].Deleted {
			continue
		}
		olb = olb.Sub(l.Events[i].Principal)
	}
	return olb
}

// CalculateActualOlbAt returns the outstanding loan balance as of a date,
// folding only non-deleted events dated on or before asOf.
func (l *Loan) CalculateActualOlbAt(asOf time.Time) decimal.Decimal {
	olb := l.Amount
	for i := range l.Events {
		ev := &l.Events[i]
		if ev.Deleted || ev.Date.After(asOf) {
			continue
		}
		olb = olb.Sub(ev.Principal)
	}
	return olb
}

// GetLastRepaymentDate returns the latest date among events that actually
// reduced the balance, or the loan start date when none exist. Seeds the
// day-count cursor for interest accrual.
func (l *Loan) GetLastRepaymentDate() time.Time {
	last := l.StartDate
	for i := range l.Events {
		ev := &l.Events[i]
		if ev.Deleted || !ev.Principal.IsPositive() {
			continue
		}
		if ev.Date.After(last) {
			last = ev.Date
		}
	}
	return last
}

// CalculateRemainingInterests sums the unpaid scheduled interest of every
// installment due on or before asOf.
func (l *Loan) CalculateRemainingInterests(asOf time.Time) decimal.Decimal {
	total := decimal.Zero
	for i := range l.Installments {
		inst := &l.Installments[i]
		if inst.ExpectedDate.After(asOf) {
			continue
		}
		total = total.Add(inst.InterestsRepayment.Sub(inst.PaidInterests))
	}
	return total
}

// Copy deep-clones the loan with an independent installment list and event
// log. Mutations on the clone are invisible to the original; the late-fee
// recomputation owns its clone exclusively and discards it afterwards.
func (l *Loan) Copy() *Loan {
	clone := *l
	clone.Installments = make([]Installment, len(l.Installments))
	copy(clone.Installments, l.Installments)
	clone.Events = make([]RepaymentEvent, len(l.Events))
	copy(clone.Events, l.Events)
	return &clone
}

// MayRegrade returns true if the loan can be regraded
func (l *Loan) MayRegrade() bool {
	return l.Status == LoanStatusActive
}

// MayReopen returns true if a settled loan can be reopened
func (l *Loan) MayReopen() bool {
	return l.Status == LoanStatusRegraded || l.Status == LoanStatusClosed
}

// LoanResponse is the JSON response format for loans
type LoanResponse struct {
	ID             uint                     `json:"id"`
	ContractCode   string                   `json:"contract_code"`
	BorrowerUserID uint                     `json:"borrower_user_id"`
	LoanType       string                   `json:"loan_type"`
	StartDate      time.Time                `json:"start_date"`
	Amount         decimal.Decimal          `json:"amount"`
	InterestRate   decimal.Decimal          `json:"interest_rate"`
	UseCents       bool                     `json:"use_cents"`
	Status         string                   `json:"status"`
	Olb            decimal.Decimal          `json:"olb"`
	ClosedAt       *time.Time               `json:"closed_at,omitempty"`
	Installments   []InstallmentResponse    `json:"installments,omitempty"`
	Events         []RepaymentEventResponse `json:"events,omitempty"`
}

// ToResponse converts Loan to LoanResponse
func (l *Loan) ToResponse() LoanResponse {
	resp := LoanResponse{
		ID:             l.ID,
		ContractCode:   l.ContractCode,
		BorrowerUserID: l.BorrowerUserID,
		LoanType:       l.LoanType,
		StartDate:      l.StartDate,
		Amount:         l.Amount,
		InterestRate:   l.InterestRate,
		UseCents:       l.UseCents,
		Status:         l.Status,
		Olb:            l.CalculateActualOlb(),
		ClosedAt:       l.ClosedAt,
	}
	for i := range l.Installments {
		resp.Installments = append(resp.Installments, l.Installments[i].ToResponse())
	}
	for i := range l.Events {
		resp.Events = append(resp.Events, l.Events[i].ToResponse())
	}
	return resp
}
