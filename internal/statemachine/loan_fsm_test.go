package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/crediflow-api/internal/models"
)

func TestLoanFSM_Regrade(t *testing.T) {
	loan := &models.Loan{Status: models.LoanStatusActive}
	lfsm := NewLoanFSM(loan)

	require.True(t, lfsm.Can("regrade"))
	require.NoError(t, lfsm.Regrade(context.Background()))
	assert.Equal(t, models.LoanStatusRegraded, loan.Status)
	assert.Equal(t, models.LoanStatusRegraded, lfsm.Current())
}

func TestLoanFSM_RegradeRejectedWhenSettled(t *testing.T) {
	for _, status := range []string{models.LoanStatusRegraded, models.LoanStatusClosed} {
		loan := &models.Loan{Status: status}
		lfsm := NewLoanFSM(loan)

		assert.False(t, lfsm.Can("regrade"))
		assert.Error(t, lfsm.Regrade(context.Background()))
		assert.Equal(t, status, loan.Status)
	}
}

func TestLoanFSM_Close(t *testing.T) {
	loan := &models.Loan{Status: models.LoanStatusActive}
	lfsm := NewLoanFSM(loan)

	require.NoError(t, lfsm.Close(context.Background()))
	assert.Equal(t, models.LoanStatusClosed, loan.Status)
}

func TestLoanFSM_Reopen(t *testing.T) {
	loan := &models.Loan{Status: models.LoanStatusRegraded}
	lfsm := NewLoanFSM(loan)

	require.NoError(t, lfsm.Reopen(context.Background()))
	assert.Equal(t, models.LoanStatusActive, loan.Status)

	// The reopened loan can be regraded again
	assert.True(t, NewLoanFSM(loan).Can("regrade"))
}

func TestLoanFSM_ReopenRejectedWhenActive(t *testing.T) {
	loan := &models.Loan{Status: models.LoanStatusActive}
	lfsm := NewLoanFSM(loan)

	assert.Error(t, lfsm.Reopen(context.Background()))
	assert.Equal(t, models.LoanStatusActive, loan.Status)
}
