package model

import "time"

// WarehouseConfig is the persisted application configuration. The
// activation fields (IsActive, LicenseKey, ExpiryDate, MachineID) are
// owned by the activation engine; the company fields are editable
// through the settings endpoint.
type WarehouseConfig struct {
	IFU         string     `json:"ifu"`
	CompanyName string     `json:"companyName"`
	Supervisor  string     `json:"supervisor"`
	LicenseKey  string     `json:"licenseKey,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	IsActive    bool       `json:"isActive"`
	MachineID   string     `json:"machineId"`
}

// DefaultConfig returns the first-run configuration for a machine.
func DefaultConfig(machineID string) WarehouseConfig {
	return WarehouseConfig{
		IFU:         "",
		CompanyName: "Mon Entrepôt",
		Supervisor:  "Gérant Justin",
		IsActive:    false,
		MachineID:   machineID,
	}
}
