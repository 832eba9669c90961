package store

import (
	"bytes"
	"sort"
	"sync"
)

// Memory is a Store kept in process memory. Nothing survives Close.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte

	// FailPut, when set, is returned by every Put. Tests use it to simulate
	// a full disk.
	FailPut error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Ping() error { return nil }

func (m *Memory) Close() error { return nil }

func (m *Memory) Get(slot string) ([]byte, error) {
	if err := validSlot(slot); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.slots[slot]
	if !ok {
		return nil, ErrSlotNotFound
	}

	return bytes.Clone(v), nil
}

func (m *Memory) Put(slot string, value []byte) error {
	if err := validSlot(slot); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailPut != nil {
		return m.FailPut
	}

	if value == nil {
		value = []byte{}
	}

	m.slots[slot] = bytes.Clone(value)

	return nil
}

func (m *Memory) Delete(slot string) error {
	if err := validSlot(slot); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, slot)

	return nil
}

func (m *Memory) Slots() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.slots))
	for k := range m.slots {
		out = append(out, k)
	}

	sort.Strings(out)

	return out, nil
}
