// Package devmem implements the device-memory manager consumed by prep: it
// tracks which resources are resident on the compute device, accounts their
// footprint against a byte budget with a reserved margin, and admits load
// requests by evicting least-recently-used idle resources until the request
// fits. It is structured into small files by concern:
//
//   - manager.go: Manager type, Config, constructor, simple getters.
//   - admission.go: Load - the single admission path, serialized internally.
//   - evict.go: LRU eviction of unreferenced resident resources.
//   - release.go: Release/Flush lifecycle after a computation finishes.
//   - status.go: Status reporting for the HTTP surface.
//   - events.go: Event, EventPublisher, and the in-memory test publisher.
//   - metrics.go: Prometheus collectors.
//
// Residency accounting covers resource weights (Resource.MemorySize); the
// required/minimum figures of a load request are execution headroom on top
// of that, so admission checks budget - margin - resident >= headroom.
package devmem
