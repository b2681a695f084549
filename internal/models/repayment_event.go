package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RepaymentEvent is one entry of a loan's repayment ledger. The ledger is
// append-only: deleting a repayment sets the Deleted flag so balances can
// still be reconstructed as of any historical date and the row is kept
// for audit.
type RepaymentEvent struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	LoanID    uint            `gorm:"not null;index" json:"loan_id"`
	Reference string          `gorm:"uniqueIndex;not null" json:"reference"`
	Date      time.Time       `gorm:"type:date;not null;index" json:"date"`
	Principal decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"principal"`
	Interests decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"interests"`
	Fees      decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"fees"`
	Deleted   bool            `gorm:"default:false;index" json:"deleted"`
	Comment   *string         `json:"comment,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name for RepaymentEvent
func (RepaymentEvent) TableName() string {
	return "repayment_events"
}

// RepaymentEventResponse is the JSON response format for ledger events
type RepaymentEventResponse struct {
	ID        uint            `json:"id"`
	Reference string          `json:"reference"`
	Date      time.Time       `json:"date"`
	Principal decimal.Decimal `json:"principal"`
	Interests decimal.Decimal `json:"interests"`
	Fees      decimal.Decimal `json:"fees"`
	Deleted   bool            `json:"deleted"`
	Comment   *string         `json:"comment,omitempty"`
}

// ToResponse converts RepaymentEvent to RepaymentEventResponse
func (e *RepaymentEvent) ToResponse() RepaymentEventResponse {
	return RepaymentEventResponse{
		ID:        e.ID,
		Reference: e.Reference,
		Date:      e.Date,
		Principal: e.Principal,
		Interests: e.Interests,
		Fees:      e.Fees,
		Deleted:   e.Deleted,
		Comment:   e.Comment,
	}
}
