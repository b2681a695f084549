package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment represents one scheduled period of a loan: what is due and
// what has actually been settled. Number is the 1-based position in the
// schedule and is immutable once created.
type Installment struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	LoanID             uint            `gorm:"not null;index" json:"loan_id"`
	Number             int             `gorm:"not null" json:"number"`
	ExpectedDate       time.Time       `gorm:"type:date;not null;index" json:"expected_date"`
	CapitalRepayment   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"capital_repayment"`
	InterestsRepayment decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"interests_repayment"`
	FeesUnpaid         decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"fees_unpaid"`
	PaidCapital        decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"paid_capital"`
	PaidInterests      decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"paid_interests"`
	Repaid             bool            `gorm:"column:is_repaid;default:false" json:"is_repaid"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Installment
func (Installment) TableName() string {
	return "installments"
}

// UnpaidCapital returns the scheduled capital not yet settled
func (i *Installment) UnpaidCapital() decimal.Decimal {
	return i.CapitalRepayment.Sub(i.PaidCapital)
}

// InterestToPay returns the scheduled interest not yet settled.
// PaidInterests exceeding InterestsRepayment signals a late or irregular
// repayment, not an error; callers branch on it.
func (i *Installment) InterestToPay() decimal.Decimal {
	return i.InterestsRepayment.Sub(i.PaidInterests)
}

// RescheduleInterest overwrites the scheduled interest of this period.
// Called when a settlement date falls between two expected dates and the
// period's interest is corrected to the days actually elapsed. This is a
// permanent schedule correction, not a read.
func (i *Installment) RescheduleInterest(amount decimal.Decimal) {
	i.InterestsRepayment = amount
}

// MarkRepaid settles the installment in full
func (i *Installment) MarkRepaid() {
	i.PaidCapital = i.CapitalRepayment
	i.PaidInterests = i.InterestsRepayment
	i.Repaid = true
}

// InstallmentResponse is the JSON response format for installments
type InstallmentResponse struct {
	Number             int             `json:"number"`
	ExpectedDate       time.Time       `json:"expected_date"`
	CapitalRepayment   decimal.Decimal `json:"capital_repayment"`
	InterestsRepayment decimal.Decimal `json:"interests_repayment"`
	FeesUnpaid         decimal.Decimal `json:"fees_unpaid"`
	PaidCapital        decimal.Decimal `json:"paid_capital"`
	PaidInterests      decimal.Decimal `json:"paid_interests"`
	Repaid             bool            `json:"is_repaid"`
}

// ToResponse converts Installment to InstallmentResponse
func (i *Installment) ToResponse() InstallmentResponse {
	return InstallmentResponse{
		Number:             i.Number,
		ExpectedDate:       i.ExpectedDate,
		CapitalRepayment:   i.CapitalRepayment,
		InterestsRepayment: i.InterestsRepayment,
		FeesUnpaid:         i.FeesUnpaid,
		PaidCapital:        i.PaidCapital,
		PaidInterests:      i.PaidInterests,
		Repaid:             i.Repaid,
	}
}
