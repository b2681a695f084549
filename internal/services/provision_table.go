package services

import (
	"github.com/crediflow/crediflow-api/internal/models"
)

// ProvisionTable is the ordered set of provisioning bands for one
// session. It is constructed once per session and passed by reference;
// callers sharing it across goroutines must serialize access themselves.
type ProvisionTable struct {
	rates []models.ProvisioningRate
}

// NewProvisionTable builds a table from bands already in lookup order
func NewProvisionTable(rates []models.ProvisioningRate) *ProvisionTable {
	return &ProvisionTable{rates: rates}
}

// Add appends a band at the end of the table
func (t *ProvisionTable) Add(rate models.ProvisioningRate) {
	t.rates = append(t.rates, rate)
}

// Len returns the number of bands
func (t *ProvisionTable) Len() int {
	return len(t.rates)
}

// Rates returns the bands in table order
func (t *ProvisionTable) Rates() []models.ProvisioningRate {
	return t.rates
}

// GetRate returns the first band whose number matches the given rank, or
// false when no band matches. A miss is a normal outcome, not a fault.
func (t *ProvisionTable) GetRate(rank int) (*models.ProvisioningRate, bool) {
	for i := range t.rates {
		if t.rates[i].Number == rank {
			return &t.rates[i], true
		}
	}
	return nil, false
}

// GetRateByDaysLate returns the first band covering the given days-late
// value, or false when none does. Bands may overlap or leave gaps, so
// this must stay a linear scan in table order: first match wins, never
// tightest fit.
func (t *ProvisionTable) GetRateByDaysLate(days int) (*models.ProvisioningRate, bool) {
	for i := range t.rates {
		if t.rates[i].Covers(days) {
			return &t.rates[i], true
		}
	}
	return nil, false
}
