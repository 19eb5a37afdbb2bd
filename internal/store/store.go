// Package store is the durable key-value boundary shared by the
// machine provisioner, the license registry and the config record.
// Payloads are JSON-encoded whole snapshots: every mutation rewrites
// the full record, so a crash between mutation and persistence is
// never observable by a later read.
package store

import (
	"encoding/json"
	"time"

	"elena-license-engine/internal/model"

	"gorm.io/gorm"
)

type KV interface {
	// Get decodes the named record into v. The bool reports whether
	// the record exists; a malformed payload is reported as an error
	// so callers can fall back to their seeded defaults.
	Get(name string, v any) (bool, error)

	// Put JSON-encodes v and durably persists it under name.
	Put(name string, v any) error
}

// SQLiteKV keeps named JSON records in one GORM table. Every write
// also lands in a process-local shadow map, so when the disk goes away
// reads keep returning the last written values and the application
// degrades to in-memory operation instead of failing.
type SQLiteKV struct {
	db  *gorm.DB
	mem map[string]json.RawMessage
}

func NewSQLiteKV(db *gorm.DB) *SQLiteKV {
	return &SQLiteKV{db: db, mem: make(map[string]json.RawMessage)}
}

func (s *SQLiteKV) Get(name string, v any) (bool, error) {
	var rec model.KVRecord
	err := s.db.First(&rec, "name = ?", name).Error
	if err == gorm.ErrRecordNotFound {
		if raw, ok := s.mem[name]; ok {
			return true, json.Unmarshal(raw, v)
		}
		return false, nil
	}
	if err != nil {
		// Degraded mode: serve the shadow copy if we have one.
		if raw, ok := s.mem[name]; ok {
			return true, json.Unmarshal(raw, v)
		}
		return false, err
	}
	return true, json.Unmarshal([]byte(rec.Value), v)
}

func (s *SQLiteKV) Put(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mem[name] = raw

	rec := model.KVRecord{Name: name, Value: string(raw), UpdatedAt: time.Now()}
	return s.db.Save(&rec).Error
}
