package model

import "time"

// License statuses are display labels; the engine never derives them
// from the expiry date.
const (
	StatusActive  = "Active"
	StatusExpired = "Expired"
	StatusPending = "Pending"
)

// MasterKey is the pre-seeded owner key, stored in normalized form.
const (
	MasterKey        = "0000000000000000"
	MasterKeyDisplay = "0000-0000-0000-0000"
	MasterClientID   = "Justin (Propriétaire)"

	// Sentinel term for the master record, kept for redisplay.
	MasterDurationDays = 30000
)

type License struct {
	Key          string    `json:"key"`
	ClientID     string    `json:"clientId"`
	ExpiryDate   time.Time `json:"expiryDate"`
	MachineID    *string   `json:"machineId"`
	DurationDays int       `json:"durationDays"`
	Status       string    `json:"status"`
}

// MasterLicense returns the non-revocable owner record the registry is
// seeded with on first run.
func MasterLicense() License {
	return License{
		Key:          MasterKey,
		ClientID:     MasterClientID,
		ExpiryDate:   time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC),
		MachineID:    nil,
		DurationDays: MasterDurationDays,
		Status:       StatusActive,
	}
}

// IsMaster reports whether this is the owner record.
func (l *License) IsMaster() bool {
	return l.Key == MasterKey
}
