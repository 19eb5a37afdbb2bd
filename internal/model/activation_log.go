package model

import (
	"time"

	"gorm.io/gorm"
)

type ActivationLog struct {
	gorm.Model
	LicenseKey string    `json:"license_key" gorm:"index"`
	Action     string    `json:"action"` // "activate", "lock", "generate", "revoke"
	Result     string    `json:"result"` // "success" or the error label
	MachineID  string    `json:"machine_id"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	Timestamp  time.Time `json:"timestamp"`
}
