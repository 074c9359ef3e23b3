package prep

import (
	"errors"
	"reflect"
	"testing"
)

func TestRegisterHooksCopiesPrimaryRegistrations(t *testing.T) {
	p := &fakePrimary{
		wrappers:  Registrations{"wrappers": {"unet": {"w1"}}},
		callbacks: Registrations{"callbacks": {"post": {"c1"}}},
	}
	opts := &Options{}
	if _, err := RegisterHooks(p, Set{}, opts); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Mutating the working copies must not reach the primary's originals.
	opts.Transformer.Wrappers["wrappers"]["unet"] = append(opts.Transformer.Wrappers["wrappers"]["unet"], "w2")
	opts.ToLoad.Callbacks["callbacks"]["post"] = append(opts.ToLoad.Callbacks["callbacks"]["post"], "c2")
	if len(p.wrappers["wrappers"]["unet"]) != 1 {
		t.Fatalf("primary wrappers mutated: %v", p.wrappers)
	}
	if len(p.callbacks["callbacks"]["post"]) != 1 {
		t.Fatalf("primary callbacks mutated: %v", p.callbacks)
	}
}

func TestRegisterHooksDispatchOrder(t *testing.T) {
	var log []string
	t1 := &fakeHook{kind: KindTransformerOptions, name: "t1", log: &log}
	t2 := &fakeHook{kind: KindTransformerOptions, name: "t2", log: &log}
	a1 := &fakeHook{kind: KindAdditionalModels, name: "a1", log: &log}
	p := &fakePrimary{}
	set := Set{"positive": {{Hooks: NewGroup(t1, a1, t2)}}}
	if _, err := RegisterHooks(p, set, &Options{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Transformer-options hooks first in encounter order, then
	// additional-models hooks.
	want := []string{"t1", "t2", "a1"}
	if !reflect.DeepEqual(log, want) {
		t.Fatalf("dispatch order %v, want %v", log, want)
	}
	if p.gotHooks == nil || p.gotHooks.Len() != 3 {
		t.Fatalf("primary must receive the full hook group")
	}
}

func TestRegisterHooksAttachesRegistry(t *testing.T) {
	h := &fakeHook{kind: KindTransformerOptions, name: "h"}
	opts := &Options{}
	if _, err := RegisterHooks(&fakePrimary{}, Set{"positive": {{Hooks: NewGroup(h)}}}, opts); err != nil {
		t.Fatalf("register: %v", err)
	}
	if opts.RegisteredHooks == nil || opts.RegisteredHooks.Len() != 1 {
		t.Fatalf("applied hooks must be recorded in the registry")
	}
}

func TestRegisterHooksEmptyRegistryNotAttached(t *testing.T) {
	opts := &Options{}
	if _, err := RegisterHooks(&fakePrimary{}, Set{}, opts); err != nil {
		t.Fatalf("register: %v", err)
	}
	if opts.RegisteredHooks != nil {
		t.Fatalf("empty registry must not be attached")
	}
}

func TestRegisterHooksMergePreservesExistingLoadOptions(t *testing.T) {
	p := &fakePrimary{wrappers: Registrations{"wrappers": {"unet": {"fresh"}}}}
	opts := &Options{ToLoad: LoadOptions{
		Wrappers:  Registrations{"wrappers": {"unet": {"existing"}}},
		Callbacks: Registrations{},
	}}
	got, err := RegisterHooks(p, Set{}, opts)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	merged := got.Wrappers["wrappers"]["unet"]
	if !reflect.DeepEqual(merged, []Callback{"existing", "fresh"}) {
		t.Fatalf("existing load options must win the front: %v", merged)
	}
}

func TestRegisterHooksHookErrorPropagates(t *testing.T) {
	boom := errors.New("patch rejected")
	h := &fakeHook{kind: KindTransformerOptions, name: "h", err: boom}
	_, err := RegisterHooks(&fakePrimary{}, Set{"positive": {{Hooks: NewGroup(h)}}}, &Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("hook error not surfaced: %v", err)
	}
}

func TestRegisterHooksWeightPatchErrorPropagates(t *testing.T) {
	boom := errors.New("conflicting weight key")
	p := &fakePrimary{registerFn: func(*Group, TargetKey, *Options, *Group) error { return boom }}
	_, err := RegisterHooks(p, Set{}, &Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("weight-patch error not surfaced: %v", err)
	}
}

func TestRegisterHooksNonApplierIsMalformed(t *testing.T) {
	set := Set{"positive": {{Hooks: NewGroup(&plainHook{kind: KindTransformerOptions})}}}
	_, err := RegisterHooks(&fakePrimary{}, set, &Options{})
	if !IsMalformedConditioning(err) {
		t.Fatalf("expected malformed conditioning, got %v", err)
	}
}

func TestRegisterHooksChainCycleSurfaces(t *testing.T) {
	a := &fakeControl{}
	a.prev = a
	_, err := RegisterHooks(&fakePrimary{}, Set{"positive": {{Control: a}}}, &Options{})
	if !IsChainCycle(err) {
		t.Fatalf("expected chain cycle, got %v", err)
	}
}
