package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/crediflow/crediflow-api/internal/models"
)

// LoanFSM wraps a loan with its state machine
type LoanFSM struct {
	loan *models.Loan
	fsm  *fsm.FSM
}

// NewLoanFSM creates a new loan state machine
func NewLoanFSM(loan *models.Loan) *LoanFSM {
	lfsm := &LoanFSM{
		loan: loan,
	}

	lfsm.fsm = fsm.NewFSM(
		loan.Status,
		fsm.Events{
			// active → regraded (full settlement via regrading)
			{Name: "regrade", Src: []string{models.LoanStatusActive}, Dst: models.LoanStatusRegraded},

			// active → closed (normal payoff)
			{Name: "close", Src: []string{models.LoanStatusActive}, Dst: models.LoanStatusClosed},

			// regraded/closed → active (reopen)
			{Name: "reopen", Src: []string{models.LoanStatusRegraded, models.LoanStatusClosed}, Dst: models.LoanStatusActive},
		},
		fsm.Callbacks{},
	)

	return lfsm
}

// Regrade transitions the loan to regraded state
func (l *LoanFSM) Regrade(ctx context.Context) error {
	if !l.loan.MayRegrade() {
		return fmt.Errorf("loan cannot be regraded in current state: %s", l.loan.Status)
	}

	if err := l.fsm.Event(ctx, "regrade"); err != nil {
		return fmt.Errorf("failed to regrade loan: %w", err)
	}

	l.loan.Status = l.fsm.Current()
	return nil
}

// Close transitions the loan to closed state
func (l *LoanFSM) Close(ctx context.Context) error {
	if err := l.fsm.Event(ctx, "close"); err != nil {
		return fmt.Errorf("failed to close loan: %w", err)
	}

	l.loan.Status = l.fsm.Current()
	return nil
}

// Reopen transitions a settled loan back to active
func (l *LoanFSM) Reopen(ctx context.Context) error {
	if !l.loan.MayReopen() {
		return fmt.Errorf("loan cannot be reopened in current state: %s", l.loan.Status)
	}

	if err := l.fsm.Event(ctx, "reopen"); err != nil {
		return fmt.Errorf("failed to reopen loan: %w", err)
	}

	l.loan.Status = l.fsm.Current()
	return nil
}

// Current returns the current state
func (l *LoanFSM) Current() string {
	return l.fsm.Current()
}

// Can checks if a transition is possible
func (l *LoanFSM) Can(event string) bool {
	return l.fsm.Can(event)
}
