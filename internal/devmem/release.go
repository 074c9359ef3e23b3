package devmem

import (
	"time"

	"prepd/internal/prep"
)

// Release drops the in-use reference a successful Load took on each
// resource. Resources stay resident as a cache until a later request needs
// the room. Unknown or already-released resources are ignored.
func (m *Manager) Release(resources []prep.Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	seen := make(map[prep.Resource]struct{}, len(resources))
	for _, r := range resources {
		if r == nil {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		if e := m.resident[r]; e != nil && e.refs > 0 {
			e.refs--
			e.lastUsed = now
		}
	}
	m.syncGauges()
}

// Flush evicts every idle resident resource, emptying the device cache.
// Resources still referenced by an in-flight computation are kept.
func (m *Manager) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for r, e := range m.resident {
		if e.refs > 0 {
			continue
		}
		delete(m.resident, r)
		m.used -= e.size
		m.publisher.Publish(Event{Name: "flush", Resource: label(r), Fields: map[string]any{
			"size": e.size,
		}})
	}
	m.syncGauges()
}
