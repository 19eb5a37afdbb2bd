package service

import (
	"log"
	"math"
	"sync"
	"time"

	"elena-license-engine/internal/model"
	"elena-license-engine/internal/store"
)

// Engine is the activation state machine. The application is Locked or
// Unlocked depending on config.isActive; Activate validates a key
// against the registry and this installation's machine identity and
// flips the state.
//
// The HTTP surface makes the engine multi-writer, so every mutating
// operation is serialized behind one mutex; in particular the
// lookup-then-bind in Activate is atomic and two machines cannot both
// claim the same unbound key.
type Engine struct {
	mu        sync.Mutex
	kv        store.KV
	registry  *Registry
	machineID string
	config    model.WarehouseConfig
}

// NewEngine loads the config record, seeding defaults when it is
// absent or malformed. The machine identity is stamped into the config
// on every start; it is immutable once provisioned.
func NewEngine(kv store.KV, registry *Registry, machineID string) *Engine {
	e := &Engine{kv: kv, registry: registry, machineID: machineID}

	var cfg model.WarehouseConfig
	found, err := kv.Get(model.RecordConfig, &cfg)
	if err != nil {
		log.Printf("config: load failed, using defaults: %v", err)
	}
	if found && err == nil {
		cfg.MachineID = machineID
		e.config = cfg
	} else {
		e.config = model.DefaultConfig(machineID)
	}
	e.persistConfig()
	return e
}

// MachineID returns this installation's identity.
func (e *Engine) MachineID() string {
	return e.machineID
}

// Config returns a snapshot of the current configuration.
func (e *Engine) Config() model.WarehouseConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// Licenses returns a snapshot of the registry for the admin surface.
func (e *Engine) Licenses() []model.License {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.All()
}

// FindLicense returns a copy of the record matching rawKey, or nil.
func (e *Engine) FindLicense(rawKey string) *model.License {
	e.mu.Lock()
	defer e.mu.Unlock()
	license := e.registry.Lookup(rawKey)
	if license == nil {
		return nil
	}
	out := *license
	return &out
}

// Activate validates rawKey, binds it to this machine and unlocks the
// application. Failures leave the registry and the config untouched.
func (e *Engine) Activate(rawKey string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := NormalizeKey(rawKey)
	if key == "" {
		return ErrEmptyKey
	}

	license := e.registry.Lookup(key)
	if license == nil {
		return ErrInvalidKey
	}
	if license.MachineID != nil && *license.MachineID != e.machineID {
		return ErrMachineMismatch
	}

	if err := e.registry.Bind(key, e.machineID); err != nil {
		return err
	}

	expiry := license.ExpiryDate
	e.config.IsActive = true
	e.config.LicenseKey = key
	e.config.ExpiryDate = &expiry
	e.persistConfig()
	return nil
}

// Lock returns the application to the Locked state. The bound key,
// the expiry and the registry binding survive, so re-activating with
// the same key from this machine succeeds.
func (e *Engine) Lock() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.IsActive = false
	e.persistConfig()
}

// DaysRemaining reports whole days until the recorded expiry, rounded
// up, or 0 when no expiry is recorded. Informational only: a
// non-positive value never forces a transition back to Locked.
func (e *Engine) DaysRemaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.config.ExpiryDate == nil {
		return 0
	}
	return int(math.Ceil(time.Until(*e.config.ExpiryDate).Hours() / 24))
}

// IsMasterSession reports whether the session is bound to the master
// key, which is what grants admin capabilities.
func (e *Engine) IsMasterSession() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.LicenseKey == model.MasterKey
}

// UpdateSettings mutates the company metadata only; the activation
// fields are owned by Activate and Lock.
func (e *Engine) UpdateSettings(in model.SettingsInput) model.WarehouseConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.CompanyName = in.CompanyName
	e.config.Supervisor = in.Supervisor
	e.config.IFU = in.IFU
	e.persistConfig()
	return e.config
}

func (e *Engine) persistConfig() {
	if err := e.kv.Put(model.RecordConfig, e.config); err != nil {
		log.Printf("config: persistence failure, operating in memory: %v", err)
	}
}
