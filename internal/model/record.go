package model

import "time"

// Record names in the durable store.
const (
	RecordMachineID = "machine_id"
	RecordRegistry  = "license_registry"
	RecordConfig    = "config"
)

// KVRecord is one named JSON payload in the durable store.
type KVRecord struct {
	Name      string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}
