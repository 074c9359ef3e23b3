package prep

import "context"

// fakeResource is a cleanable auxiliary resource.
type fakeResource struct {
	name    string
	size    uint64
	cleaned int
}

func (r *fakeResource) MemorySize() uint64 { return r.size }
func (r *fakeResource) Cleanup()           { r.cleaned++ }

// bareResource exposes no Cleanup capability.
type bareResource struct{ size uint64 }

func (r *bareResource) MemorySize() uint64 { return r.size }

// fakeControl is a control-chain node.
type fakeControl struct {
	size        uint64
	prev        *fakeControl
	extra       *Group
	extraCalls  int
	models      []Resource
	modelsCalls int
	inferMem    uint64
	cleaned     int
}

func (c *fakeControl) MemorySize() uint64 { return c.size }

func (c *fakeControl) Previous() Control {
	if c.prev == nil {
		return nil
	}
	return c.prev
}

func (c *fakeControl) ExtraHooks() *Group {
	c.extraCalls++
	return c.extra
}

func (c *fakeControl) Models() []Resource {
	c.modelsCalls++
	if c.models != nil {
		return c.models
	}
	return []Resource{c}
}

func (c *fakeControl) InferenceMemory(DType) uint64 { return c.inferMem }
func (c *fakeControl) Cleanup()                     { c.cleaned++ }

// memCall records one MemoryRequired invocation.
type memCall struct {
	output Shape
	cond   map[string][]Shape
}

// fakePrimary satisfies Primary with an additive memory model: output volume
// plus the volume of every conditioning shape. That keeps estimates
// deterministic and monotonic for tests.
type fakePrimary struct {
	size       uint64
	dtype      DType
	nested     []Resource
	wrappers   Registrations
	callbacks  Registrations
	engine     EngineModel
	memCalls   []memCall
	registerFn func(hooks *Group, target TargetKey, opts *Options, registered *Group) error
	gotHooks   *Group
}

func (p *fakePrimary) MemorySize() uint64 { return p.size }
func (p *fakePrimary) ModelDType() DType  { return p.dtype }

func (p *fakePrimary) ExtraCondShapes(payload map[string]any) map[string]Shape {
	if m, ok := payload["shapes"].(map[string]Shape); ok {
		return m
	}
	return nil
}

func (p *fakePrimary) MemoryRequired(output Shape, cond map[string][]Shape) uint64 {
	p.memCalls = append(p.memCalls, memCall{output: output, cond: cond})
	total := output.Volume()
	for _, shapes := range cond {
		for _, s := range shapes {
			total += s.Volume()
		}
	}
	return total
}

func (p *fakePrimary) NestedModels() []Resource { return p.nested }
func (p *fakePrimary) Wrappers() Registrations  { return p.wrappers }
func (p *fakePrimary) Callbacks() Registrations { return p.callbacks }

func (p *fakePrimary) RegisterHookPatches(hooks *Group, target TargetKey, opts *Options, registered *Group) error {
	p.gotHooks = hooks
	if p.registerFn != nil {
		return p.registerFn(hooks, target, opts, registered)
	}
	return nil
}

func (p *fakePrimary) Model() EngineModel { return p.engine }

// fakeHook applies patches by recording its name and registering itself.
type fakeHook struct {
	kind   Kind
	name   string
	models []Resource
	err    error
	log    *[]string
}

func (h *fakeHook) Kind() Kind { return h.kind }

func (h *fakeHook) ApplyPatches(_ Primary, _ *Options, _ TargetKey, registered *Group) error {
	if h.err != nil {
		return h.err
	}
	if h.log != nil {
		*h.log = append(*h.log, h.name)
	}
	registered.Add(h)
	return nil
}

func (h *fakeHook) Models() []Resource { return h.models }

// plainHook carries a kind but cannot apply patches.
type plainHook struct{ kind Kind }

func (h *plainHook) Kind() Kind { return h.kind }

// fakeDevice records load requests and returns a canned error.
type fakeDevice struct {
	err      error
	loads    [][]Resource
	required []uint64
	minimum  []uint64
}

func (d *fakeDevice) Load(_ context.Context, rs []Resource, required, minimum uint64) error {
	d.loads = append(d.loads, rs)
	d.required = append(d.required, required)
	d.minimum = append(d.minimum, minimum)
	return d.err
}

// entryWithShapes builds an entry whose payload names shape buckets.
func entryWithShapes(buckets map[string]Shape) *Entry {
	return &Entry{Payload: map[string]any{"shapes": buckets}}
}

func containsResource(rs []Resource, want Resource) bool {
	for _, r := range rs {
		if r == want {
			return true
		}
	}
	return false
}

func countResource(rs []Resource, want Resource) int {
	n := 0
	for _, r := range rs {
		if r == want {
			n++
		}
	}
	return n
}
