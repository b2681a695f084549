package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/crediflow/crediflow-api/internal/models"
)

// QuoteCache keeps recently computed regrading quotes in Redis so that
// repeated queries for the same loan, options and date skip the schedule
// walk. Entries are short-lived; any repayment invalidates them by key
// (the key embeds the ledger version).
type QuoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuoteCache creates a quote cache against the given Redis address
func NewQuoteCache(addr string, ttl time.Duration) *QuoteCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &QuoteCache{client: rdb, ttl: ttl}
}

// Key builds the cache key for a quote request. The event count acts as a
// cheap ledger version so stale quotes die with the key, not just the TTL.
func (c *QuoteCache) Key(loan *models.Loan, opts *models.CreditContractOptions, payDate time.Time) string {
	return fmt.Sprintf("regrading_quote:%d:%d:%s:%s:%t:%s:%t:%s:%s",
		loan.ID,
		len(loan.Events),
		payDate.Format("2006-01-02"),
		opts.LoansType,
		opts.CancelInterests,
		opts.ManualInterestsAmount.String(),
		opts.CancelFees,
		opts.ManualFeesAmount.String(),
		opts.ManualCommissionAmount.String(),
	)
}

// Get returns a cached quote amount, if present
func (c *QuoteCache) Get(ctx context.Context, key string) (decimal.Decimal, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// Set stores a quote amount under the given key
func (c *QuoteCache) Set(ctx context.Context, key string, amount decimal.Decimal) error {
	return c.client.Set(ctx, key, amount.String(), c.ttl).Err()
}
