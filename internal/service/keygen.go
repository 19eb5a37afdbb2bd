package service

import (
	"strings"
	"time"

	"elena-license-engine/internal/model"
)

// newLicenseKey mints a display-form key. Collisions are vanishingly
// unlikely but cheap to rule out against the live registry.
func (r *Registry) newLicenseKey() string {
	for {
		display := "ELENA-" + randomGroup(4) + "-" + randomGroup(4)
		if r.Lookup(display) == nil {
			return display
		}
	}
}

// GenerateKey mints a new license for clientID running durationDays
// from today and inserts it into the registry. It returns the
// display-form key (with dashes) exactly once; the stored form is the
// normalized string. The master-session privilege check belongs to the
// caller.
func (e *Engine) GenerateKey(clientID string, durationDays int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if strings.TrimSpace(clientID) == "" {
		return "", ErrEmptyClientName
	}

	display := e.registry.newLicenseKey()
	license := model.License{
		Key:          NormalizeKey(display),
		ClientID:     clientID,
		ExpiryDate:   time.Now().AddDate(0, 0, durationDays),
		MachineID:    nil,
		DurationDays: durationDays,
		Status:       model.StatusActive,
	}
	e.registry.Insert(license)
	return display, nil
}

// RevokeLicense permanently removes a non-master license.
func (e *Engine) RevokeLicense(rawKey string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Revoke(rawKey)
}

// FormatKeyDisplay renders a stored key with dashes for the admin
// console: the master key as 0000-0000-0000-0000, ELENA keys with
// their two groups restored.
func FormatKeyDisplay(key string) string {
	if key == model.MasterKey {
		return model.MasterKeyDisplay
	}
	if strings.HasPrefix(key, "ELENA") && len(key) == 13 {
		return "ELENA-" + key[5:9] + "-" + key[9:]
	}
	return key
}
