package models

import "time"

// ProvisioningRate is one loss-provisioning band: loans between
// NbOfDaysMin and NbOfDaysMax days late (inclusive) provision at Rate
// percent. Bands are not required to be exhaustive or non-overlapping;
// lookups resolve ambiguity by table order.
type ProvisioningRate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Number      int       `gorm:"not null" json:"number"`
	NbOfDaysMin int       `gorm:"not null" json:"nb_of_days_min"`
	NbOfDaysMax int       `gorm:"not null" json:"nb_of_days_max"`
	Rate        float64   `gorm:"not null" json:"rate"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for ProvisioningRate
func (ProvisioningRate) TableName() string {
	return "provisioning_rates"
}

// Covers returns true when the band includes the given days-late value
func (p *ProvisioningRate) Covers(days int) bool {
	return p.NbOfDaysMin <= days && days <= p.NbOfDaysMax
}
