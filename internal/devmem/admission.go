package devmem

import (
	"context"
	"time"

	"prepd/internal/prep"
)

// Load makes every listed resource resident with at least minimum bytes of
// execution headroom free under the budget, preferring required. Admission
// is serialized: concurrent callers are admitted one at a time. On failure
// nothing is newly retained.
func (m *Manager) Load(ctx context.Context, resources []prep.Resource, required, minimum uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	// Size the request. Duplicates are tolerated but counted once.
	req := make(map[prep.Resource]uint64, len(resources))
	order := make([]prep.Resource, 0, len(resources))
	var reqBytes uint64
	for _, r := range resources {
		if r == nil {
			continue
		}
		if _, ok := req[r]; ok {
			continue
		}
		sz := r.MemorySize()
		req[r] = sz
		order = append(order, r)
		reqBytes += sz
	}

	if m.budget > 0 {
		// Feasibility first: resources pinned by other in-flight requests
		// cannot be evicted, so they bound the attainable headroom.
		var pinnedOther uint64
		for r, e := range m.resident {
			if e.refs > 0 {
				if _, inReq := req[r]; !inReq {
					pinnedOther += e.size
				}
			}
		}
		attainable := int64(m.budget) - int64(m.margin) - int64(reqBytes) - int64(pinnedOther)
		if attainable < int64(minimum) {
			m.exhaustedTotal++
			exhaustedCounter.Inc()
			m.publisher.Publish(Event{Name: "load_exhausted", Fields: map[string]any{
				"minimum": minimum, "attainable": clampNonNegative(attainable),
			}})
			m.log.Warn().Uint64("minimum", minimum).Int64("attainable", attainable).
				Msg("load rejected: minimum headroom unattainable")
			return prep.ErrResourceExhausted(minimum, clampNonNegative(attainable))
		}
		target := required
		if int64(target) > attainable {
			// Admit with degraded headroom; still at or above minimum.
			target = uint64(attainable)
		}
		m.evictForHeadroom(target, req, reqBytes)
	}

	now := time.Now()
	for _, r := range order {
		e := m.resident[r]
		if e == nil {
			e = &entry{res: r, size: req[r]}
			m.resident[r] = e
			m.used += e.size
		}
		e.refs++
		e.lastUsed = now
	}
	m.loadsTotal++
	loadsCounter.Inc()
	m.syncGauges()
	m.publisher.Publish(Event{Name: "load_admitted", Fields: map[string]any{
		"resources": len(order), "required": required, "minimum": minimum,
	}})
	m.log.Debug().Int("resources", len(order)).Uint64("required", required).
		Uint64("minimum", minimum).Uint64("used", m.used).Msg("load admitted")
	return nil
}

func clampNonNegative(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}
