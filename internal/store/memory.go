package store

import "encoding/json"

// MemoryKV is an in-memory store used by tests and as the explicit
// degraded-mode backend. Err, when set, is returned by every call and
// simulates an unreadable/unwritable durable store.
type MemoryKV struct {
	Err  error
	data map[string]json.RawMessage
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]json.RawMessage)}
}

func (m *MemoryKV) Get(name string, v any) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	raw, ok := m.data[name]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (m *MemoryKV) Put(name string, v any) error {
	if m.Err != nil {
		return m.Err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if m.data == nil {
		m.data = make(map[string]json.RawMessage)
	}
	m.data[name] = raw
	return nil
}
