package model

import "time"

// DailyActivations is one day of activation attempts.
type DailyActivations struct {
	Date     time.Time `json:"date"`
	Attempts int       `json:"attempts"`
	Failures int       `json:"failures"`
}

// RegistryStatistics is the admin read model over the license registry
// and the activation audit trail.
type RegistryStatistics struct {
	TotalLicenses     int64              `json:"total_licenses"`
	BoundLicenses     int64              `json:"bound_licenses"`
	UnboundLicenses   int64              `json:"unbound_licenses"`
	ExpiredLicenses   int64              `json:"expired_licenses"`
	ExpiringLicenses  int64              `json:"expiring_licenses"`
	LicensesByStatus  map[string]int     `json:"licenses_by_status"`
	TotalActivations  int64              `json:"total_activations"`
	FailedActivations int64              `json:"failed_activations"`
	DailyActivations  []DailyActivations `json:"daily_activations"`
}

// GetSuccessRate reports the fraction of attempts that succeeded.
func (rs *RegistryStatistics) GetSuccessRate() float64 {
	if rs.TotalActivations == 0 {
		return 0
	}
	return float64(rs.TotalActivations-rs.FailedActivations) / float64(rs.TotalActivations)
}

// GetCountByStatus returns the number of licenses carrying a status label.
func (rs *RegistryStatistics) GetCountByStatus(status string) int {
	if count, ok := rs.LicensesByStatus[status]; ok {
		return count
	}
	return 0
}

// GetDailyActivationsByDate returns the series entry for a calendar day.
func (rs *RegistryStatistics) GetDailyActivationsByDate(date time.Time) *DailyActivations {
	for _, day := range rs.DailyActivations {
		if day.Date.Year() == date.Year() &&
			day.Date.Month() == date.Month() &&
			day.Date.Day() == date.Day() {
			return &day
		}
	}
	return nil
}
