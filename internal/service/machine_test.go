package service

import (
	"errors"
	"regexp"
	"testing"

	"elena-license-engine/internal/model"
	"elena-license-engine/internal/store"

	"github.com/stretchr/testify/assert"
)

func TestGetOrCreateMachineID(t *testing.T) {
	kv := store.NewMemoryKV()

	id := GetOrCreateMachineID(kv)
	assert.Regexp(t, regexp.MustCompile(`^ELENA-[0-9A-Z]{4}-[0-9A-Z]{4}$`), id)

	// Subsequent calls return the persisted value unchanged
	assert.Equal(t, id, GetOrCreateMachineID(kv))

	var persisted string
	found, err := kv.Get(model.RecordMachineID, &persisted)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, id, persisted)
}

func TestGetOrCreateMachineIDBrokenStore(t *testing.T) {
	kv := store.NewMemoryKV()
	kv.Err = errors.New("disk gone")

	id := GetOrCreateMachineID(kv)
	assert.Regexp(t, regexp.MustCompile(`^ELENA-ERROR-\d+$`), id)

	// The fallback is never persisted as canonical: once the store
	// recovers, a fresh identity is provisioned
	kv.Err = nil
	recovered := GetOrCreateMachineID(kv)
	assert.Regexp(t, regexp.MustCompile(`^ELENA-[0-9A-Z]{4}-[0-9A-Z]{4}$`), recovered)
	assert.NotEqual(t, id, recovered)
}
