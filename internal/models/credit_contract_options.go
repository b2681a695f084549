package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditContractOptions carries the operator-supplied parameters of a
// regrading request. The cancel flags let an operator substitute manual
// figures for the computed interest and fee components.
type CreditContractOptions struct {
	LoansType              string          `json:"loans_type" form:"loans_type"`
	CancelInterests        bool            `json:"cancel_interests" form:"cancel_interests"`
	ManualInterestsAmount  decimal.Decimal `json:"manual_interests_amount" form:"manual_interests_amount"`
	CancelFees             bool            `json:"cancel_fees" form:"cancel_fees"`
	ManualFeesAmount       decimal.Decimal `json:"manual_fees_amount" form:"manual_fees_amount"`
	ManualCommissionAmount decimal.Decimal `json:"manual_commission_amount" form:"manual_commission_amount"`
}

// NonWorkingDates holds the non-working days the late-fee scheduler skips
// when shifting expected dates.
type NonWorkingDates struct {
	dates map[time.Time]struct{}
}

// NewNonWorkingDates builds a set from the given days (day precision)
func NewNonWorkingDates(days ...time.Time) *NonWorkingDates {
	n := &NonWorkingDates{dates: make(map[time.Time]struct{}, len(days))}
	for _, d := range days {
		n.Add(d)
	}
	return n
}

// Add registers a non-working day
func (n *NonWorkingDates) Add(d time.Time) {
	n.dates[truncateToDay(d)] = struct{}{}
}

// Contains reports whether the given day is non-working
func (n *NonWorkingDates) Contains(d time.Time) bool {
	_, ok := n.dates[truncateToDay(d)]
	return ok
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
