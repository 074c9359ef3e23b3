package prep

import "testing"

func TestConvertStampsFreshIDs(t *testing.T) {
	raw := []RawEntry{
		{CrossAttn: "attnA", Payload: map[string]any{"strength": 0.8}},
		{Payload: map[string]any{}},
	}
	entries := Convert(raw)
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	if entries[0].ID == entries[1].ID {
		t.Fatalf("entries must get distinct IDs")
	}
	if got := entries[0].Payload["cross_attn"]; got != "attnA" {
		t.Fatalf("cross_attn not folded into payload: %v", got)
	}
	if _, ok := entries[1].Payload["cross_attn"]; ok {
		t.Fatalf("nil cross_attn must not be recorded")
	}
	for i, e := range entries {
		if _, ok := e.Payload["model_conds"]; !ok {
			t.Fatalf("entry %d missing model_conds default", i)
		}
	}
}

func TestConvertCopiesPayload(t *testing.T) {
	src := map[string]any{"strength": 0.8}
	entries := Convert([]RawEntry{{Payload: src}})
	src["strength"] = 0.1
	if entries[0].Payload["strength"] != 0.8 {
		t.Fatalf("payload not copied at normalization time")
	}
}

func TestBranchKeysSorted(t *testing.T) {
	s := Set{"negative": nil, "positive": nil, "aux": nil}
	keys := s.branchKeys()
	want := []string{"aux", "negative", "positive"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("branch keys %v, want %v", keys, want)
		}
	}
}
