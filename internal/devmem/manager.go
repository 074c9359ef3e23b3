package devmem

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"prepd/internal/prep"
)

// Named lets a resource report a stable identifier for status and logs.
type Named interface {
	Name() string
}

// entry is the residency record for one resource.
type entry struct {
	res      prep.Resource
	size     uint64
	refs     int
	lastUsed time.Time
}

// Manager tracks device residency under a byte budget and admits load
// requests from the preparation layer. It implements prep.DeviceManager.
type Manager struct {
	mu       sync.Mutex
	budget   uint64
	margin   uint64
	used     uint64
	resident map[prep.Resource]*entry

	loadsTotal     uint64
	exhaustedTotal uint64
	evictionsTotal uint64

	publisher EventPublisher
	log       zerolog.Logger
	startTime time.Time
}

// Config encapsulates all tunables for Manager construction.
type Config struct {
	// BudgetBytes caps total resident footprint plus headroom. 0 disables
	// budget checks entirely.
	BudgetBytes uint64
	// MarginBytes is kept free under the budget at all times.
	MarginBytes uint64
	// Publisher receives lifecycle events; nil drops them.
	Publisher EventPublisher
	// Logger for structured manager logs; the zero value is discarded.
	Logger zerolog.Logger
}

// New constructs a Manager from Config.
func New(cfg Config) *Manager {
	m := &Manager{
		budget:    cfg.BudgetBytes,
		margin:    cfg.MarginBytes,
		resident:  make(map[prep.Resource]*entry),
		publisher: cfg.Publisher,
		log:       cfg.Logger,
		startTime: time.Now(),
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	return m
}

// Resident reports whether r is currently resident on the device.
func (m *Manager) Resident(r prep.Resource) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.resident[r]
	return ok
}

// UsedBytes reports the footprint currently accounted to resident resources.
func (m *Manager) UsedBytes() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used
}

// label names a resource for logs and status.
func label(r prep.Resource) string {
	if n, ok := r.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", r)
}
