// Package prep prepares a sampling computation: it discovers every auxiliary
// resource the conditioning pulls in, estimates the memory the computation
// will need, hands one consolidated load request to the device-memory
// manager, and composes hook-contributed overrides into the load options.
// It is structured into small files by concern:
//
//   - resource.go: Resource and optional capability interfaces, DType, Shape.
//   - cond.go: conditioning Set/Entry types and normalization (Convert).
//   - hook.go: Hook, Kind, Group (ordered identity-deduplicated set).
//   - options.go: request-scoped Options, registration maps, merge rules,
//     and the prepare-sampling interceptor chain.
//   - collect.go: CollectAdditionalModels and CollectHooks graph walks.
//   - estimate.go: EstimateMemory two-pass shape bucketing.
//   - prepare.go: PrepareSampling and the DeviceManager contract.
//   - register.go: RegisterHooks and load-option merging.
//   - cleanup.go: CleanupModels teardown.
//   - errors.go: error types and helpers (IsResourceExhausted, ...).
//
// Preparation for one request is synchronous; the only call expected to
// block is DeviceManager.Load. Callers must run CleanupModels on every exit
// path once the computation using the returned resources has finished.
package prep
