package devmem

import "prepd/internal/prep"

// evictForHeadroom evicts LRU idle residents outside keep until headroom
// after committing the request reaches target. Callers hold m.mu and have
// verified target is attainable; the loop stops when nothing evictable
// remains.
func (m *Manager) evictForHeadroom(target uint64, keep map[prep.Resource]uint64, reqBytes uint64) {
	var reqResident uint64
	for r := range keep {
		if e := m.resident[r]; e != nil {
			reqResident += e.size
		}
	}
	for {
		free := int64(m.budget) - int64(m.margin) - int64(m.used-reqResident) - int64(reqBytes)
		if free >= int64(target) {
			return
		}
		var lru *entry
		for r, e := range m.resident {
			if e.refs > 0 {
				continue
			}
			if _, ok := keep[r]; ok {
				continue
			}
			if lru == nil || e.lastUsed.Before(lru.lastUsed) {
				lru = e
			}
		}
		if lru == nil {
			return
		}
		delete(m.resident, lru.res)
		m.used -= lru.size
		m.evictionsTotal++
		evictionsCounter.Inc()
		m.publisher.Publish(Event{Name: "evict", Resource: label(lru.res), Fields: map[string]any{
			"size": lru.size,
		}})
		m.log.Debug().Str("resource", label(lru.res)).Uint64("size", lru.size).Msg("evicted")
	}
}
