package vault

import (
	"strings"
	"sync"

	"github.com/dmitrijs2005/rdplaunch/internal/models"
)

// Memory is a Vault kept in process memory.
type Memory struct {
	mu      sync.Mutex
	entries map[string]models.Identity
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]models.Identity)}
}

func (m *Memory) Save(target, username, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[target] = models.Identity{Username: username, Secret: secret}
	return nil
}

func (m *Memory) Read(target string) (*models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.entries[target]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (m *Memory) Delete(target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, target)
	return nil
}

func (m *Memory) ListWithPrefix(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0)
	for target := range m.entries {
		if strings.HasPrefix(target, prefix) {
			out = append(out, target)
		}
	}
	return out, nil
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
