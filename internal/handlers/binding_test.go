package handlers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("12.5")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromFloat(12.5)))

	amount, err = parseAmount("")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.Zero))

	_, err = parseAmount("doce")
	assert.Error(t, err)
}

func TestRegradingRequestToOptions(t *testing.T) {
	req := regradingRequest{
		Date:                   "2024-03-15",
		LoansType:              "declining_fixed",
		CancelInterests:        true,
		ManualInterestsAmount:  "3",
		CancelFees:             true,
		ManualFeesAmount:       "2",
		ManualCommissionAmount: "1",
	}

	opts, payDate, err := req.toOptions()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), payDate)
	assert.Equal(t, "declining_fixed", opts.LoansType)
	assert.True(t, opts.CancelInterests)
	assert.True(t, opts.ManualInterestsAmount.Equal(decimal.NewFromInt(3)))
	assert.True(t, opts.CancelFees)
	assert.True(t, opts.ManualFeesAmount.Equal(decimal.NewFromInt(2)))
	assert.True(t, opts.ManualCommissionAmount.Equal(decimal.NewFromInt(1)))
}

func TestRegradingRequestToOptions_OmittedAmountsDefaultToZero(t *testing.T) {
	req := regradingRequest{Date: "2024-03-15"}

	opts, _, err := req.toOptions()
	require.NoError(t, err)
	assert.True(t, opts.ManualInterestsAmount.Equal(decimal.Zero))
	assert.True(t, opts.ManualFeesAmount.Equal(decimal.Zero))
	assert.True(t, opts.ManualCommissionAmount.Equal(decimal.Zero))
}

func TestRegradingRequestToOptions_InvalidInput(t *testing.T) {
	req := regradingRequest{Date: "15/03/2024"}
	_, _, err := req.toOptions()
	assert.Error(t, err)

	req = regradingRequest{Date: "2024-03-15", ManualInterestsAmount: "tres"}
	_, _, err = req.toOptions()
	assert.Error(t, err)
}
