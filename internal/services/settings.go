package services

import (
	"time"

	"github.com/crediflow/crediflow-api/internal/config"
)

// ApplicationSettings exposes the institution-level parameters consumed by
// the calculation core.
type ApplicationSettings interface {
	// DaysInYear returns the day-count denominator for the given year.
	DaysInYear(year int) int
	// InterestRateDecimalPlaces returns the precision used when a
	// contract settles in cents.
	InterestRateDecimalPlaces() int
}

type configSettings struct {
	cfg *config.Config
}

// NewApplicationSettings builds settings backed by the loaded configuration
func NewApplicationSettings(cfg *config.Config) ApplicationSettings {
	return &configSettings{cfg: cfg}
}

func (s *configSettings) DaysInYear(year int) int {
	if s.cfg.DaysInYear != 0 {
		return s.cfg.DaysInYear
	}
	// Real number of days of the year
	return time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

func (s *configSettings) InterestRateDecimalPlaces() int {
	return s.cfg.InterestRateDecimalPlaces
}
