package prep

import (
	"sort"

	"github.com/google/uuid"
)

// Set maps a branch key (e.g. "positive", "negative") to its ordered
// conditioning entries.
type Set map[string][]*Entry

// branchKeys returns the branch keys of s in sorted order so walks over a
// Set are deterministic.
func (s Set) branchKeys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entry is one unit of guidance input for a branch. Entries are created once
// per request by Convert and not mutated afterwards.
type Entry struct {
	// ID cross-references this entry during execution. It is never used for
	// equality; entries compare by pointer like everything else here.
	ID uuid.UUID
	// Payload holds keyed auxiliary data consumed by the primary's
	// shape-requirement function.
	Payload map[string]any
	// Control is the head of a control chain, or nil.
	Control Control
	// Gated lists gated resources; only the model half of each pair
	// occupies device memory.
	Gated []GatedResource
	// Hooks are behavioral overrides contributed by this entry, or nil.
	Hooks *Group
	// Models are explicitly attached additional models.
	Models []Resource
}

// GatedResource pairs gating data with the model that applies it.
type GatedResource struct {
	Mode  string
	Model Resource
}

// RawEntry is the unnormalized form produced by upstream conditioning
// encoders: a cross-attention output plus keyed payload data.
type RawEntry struct {
	CrossAttn any
	Payload   map[string]any
}

// Convert normalizes raw entries into Entries: the payload is copied, the
// cross-attention output is folded in under "cross_attn", a "model_conds"
// mapping is guaranteed to exist, and each entry is stamped with a fresh ID.
func Convert(raw []RawEntry) []*Entry {
	out := make([]*Entry, 0, len(raw))
	for _, r := range raw {
		payload := make(map[string]any, len(r.Payload)+2)
		for k, v := range r.Payload {
			payload[k] = v
		}
		if r.CrossAttn != nil {
			payload["cross_attn"] = r.CrossAttn
		}
		if _, ok := payload["model_conds"]; !ok {
			payload["model_conds"] = map[string]any{}
		}
		out = append(out, &Entry{ID: uuid.New(), Payload: payload})
	}
	return out
}
