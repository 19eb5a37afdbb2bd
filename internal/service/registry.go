package service

import (
	"log"
	"strings"

	"elena-license-engine/internal/model"
	"elena-license-engine/internal/store"
)

// Registry is the durable collection of issued licenses. It always
// contains the master record; every mutation persists the full
// snapshot before reporting success.
type Registry struct {
	kv       store.KV
	licenses []model.License
}

// NewRegistry loads the registry from the store, seeding it with the
// master record when the record is absent or malformed.
func NewRegistry(kv store.KV) *Registry {
	r := &Registry{kv: kv}

	var loaded []model.License
	found, err := kv.Get(model.RecordRegistry, &loaded)
	if err != nil {
		log.Printf("registry: load failed, reseeding: %v", err)
	}
	if found && err == nil && validRegistry(loaded) {
		r.licenses = loaded
		return r
	}

	r.licenses = []model.License{model.MasterLicense()}
	r.persist()
	return r
}

// validRegistry rejects payloads that lost the master record or carry
// records without a key; those fall back to the seed.
func validRegistry(licenses []model.License) bool {
	hasMaster := false
	for i := range licenses {
		if licenses[i].Key == "" {
			return false
		}
		if licenses[i].IsMaster() {
			hasMaster = true
		}
	}
	return hasMaster
}

// NormalizeKey strips dashes and spaces and trims the raw key. Case is
// kept as stored: generated keys are uppercase by construction.
func NormalizeKey(raw string) string {
	raw = strings.ReplaceAll(raw, "-", "")
	raw = strings.ReplaceAll(raw, " ", "")
	return strings.TrimSpace(raw)
}

// Lookup returns the license matching the raw key, or nil.
func (r *Registry) Lookup(rawKey string) *model.License {
	key := NormalizeKey(rawKey)
	for i := range r.licenses {
		if r.licenses[i].Key == key {
			return &r.licenses[i]
		}
	}
	return nil
}

// All returns a copy of the registry contents in insertion order.
func (r *Registry) All() []model.License {
	out := make([]model.License, len(r.licenses))
	copy(out, r.licenses)
	return out
}

// Insert appends a new record and persists. Key uniqueness is the
// caller's responsibility (the generator retries on collision).
func (r *Registry) Insert(license model.License) {
	r.licenses = append(r.licenses, license)
	r.persist()
}

// Revoke removes the record matching key. Revoking the master key is
// rejected, never silently ignored.
func (r *Registry) Revoke(rawKey string) error {
	key := NormalizeKey(rawKey)
	if key == model.MasterKey {
		return ErrProtectedKey
	}
	for i := range r.licenses {
		if r.licenses[i].Key == key {
			r.licenses = append(r.licenses[:i], r.licenses[i+1:]...)
			r.persist()
			return nil
		}
	}
	return ErrInvalidKey
}

// Bind locks the license onto machineID. Binding is one-way: it
// succeeds when the record is unbound or already bound to the same
// machine, and fails otherwise. The master key binds exactly like any
// other key.
func (r *Registry) Bind(rawKey, machineID string) error {
	license := r.Lookup(rawKey)
	if license == nil {
		return ErrInvalidKey
	}
	if license.MachineID != nil && *license.MachineID != machineID {
		return ErrMachineMismatch
	}
	if license.MachineID == nil {
		license.MachineID = &machineID
		r.persist()
	}
	return nil
}

func (r *Registry) persist() {
	if err := r.kv.Put(model.RecordRegistry, r.licenses); err != nil {
		// Degraded mode: keep operating on in-memory state. Loss on
		// process exit is accepted, not masked as a hard failure.
		log.Printf("registry: persistence failure, operating in memory: %v", err)
	}
}
