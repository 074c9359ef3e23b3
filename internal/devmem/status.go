package devmem

import (
	"sort"
	"time"

	"prepd/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := types.StatusResponse{
		BudgetBytes:    m.budget,
		MarginBytes:    m.margin,
		UsedBytes:      m.used,
		LoadsTotal:     m.loadsTotal,
		ExhaustedTotal: m.exhaustedTotal,
		EvictionsTotal: m.evictionsTotal,
		ServerTimeUnix: time.Now().Unix(),
		UptimeSeconds:  int64(time.Since(m.startTime) / time.Second),
	}
	resp.Resident = make([]types.ResidentStatus, 0, len(m.resident))
	for r, e := range m.resident {
		resp.Resident = append(resp.Resident, types.ResidentStatus{
			Name:      label(r),
			SizeBytes: e.size,
			Refs:      e.refs,
			LastUsed:  e.lastUsed.Unix(),
		})
	}
	sort.Slice(resp.Resident, func(i, j int) bool {
		return resp.Resident[i].Name < resp.Resident[j].Name
	})
	return resp
}
