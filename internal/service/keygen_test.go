package service

import (
	"regexp"
	"testing"
	"time"

	"elena-license-engine/internal/model"

	"github.com/stretchr/testify/assert"
)

var keyPattern = regexp.MustCompile(`^ELENA-[0-9A-Z]{4}-[0-9A-Z]{4}$`)

func TestGenerateKey(t *testing.T) {
	e := newTestEngine(t, machineOne)

	key, err := e.GenerateKey("Brasserie du Littoral", 90)
	assert.NoError(t, err)
	assert.Regexp(t, keyPattern, key)

	license := e.FindLicense(key)
	assert.NotNil(t, license)
	assert.Equal(t, NormalizeKey(key), license.Key)
	assert.Equal(t, "Brasserie du Littoral", license.ClientID)
	assert.Equal(t, 90, license.DurationDays)
	assert.Nil(t, license.MachineID)
	assert.Equal(t, model.StatusActive, license.Status)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 90), license.ExpiryDate, 5*time.Second)
}

func TestGenerateKeyEmptyClient(t *testing.T) {
	e := newTestEngine(t, machineOne)

	_, err := e.GenerateKey("", 30)
	assert.ErrorIs(t, err, ErrEmptyClientName)
	_, err = e.GenerateKey("   ", 30)
	assert.ErrorIs(t, err, ErrEmptyClientName)
	assert.Len(t, e.Licenses(), 1)
}

func TestGenerateKeyUnique(t *testing.T) {
	e := newTestEngine(t, machineOne)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key, err := e.GenerateKey("Client", 30)
		assert.NoError(t, err)
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
	assert.Len(t, e.Licenses(), 51)
}

func TestGeneratedKeyActivates(t *testing.T) {
	e := newTestEngine(t, machineOne)

	key, err := e.GenerateKey("Dépôt Nord", 30)
	assert.NoError(t, err)

	// The display form with dashes is what the client types in
	assert.NoError(t, e.Activate(key))
	assert.True(t, e.Config().IsActive)
}

func TestFormatKeyDisplay(t *testing.T) {
	assert.Equal(t, model.MasterKeyDisplay, FormatKeyDisplay(model.MasterKey))
	assert.Equal(t, "ELENA-AB12-CD34", FormatKeyDisplay("ELENAAB12CD34"))
	assert.Equal(t, "oddball", FormatKeyDisplay("oddball"))
}
