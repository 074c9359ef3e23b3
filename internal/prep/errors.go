package prep

import "fmt"

// exhaustedError signals the device manager could not admit the minimum
// memory bound for a request.
type exhaustedError struct {
	minimum   uint64
	available uint64
}

func (e exhaustedError) Error() string {
	return fmt.Sprintf("resource exhausted: minimum %d bytes exceeds available %d", e.minimum, e.available)
}

// ErrResourceExhausted constructs the error a DeviceManager returns when it
// cannot satisfy the minimum memory bound.
func ErrResourceExhausted(minimum, available uint64) error {
	return exhaustedError{minimum: minimum, available: available}
}

// IsResourceExhausted reports whether err indicates the device could not
// admit the request.
func IsResourceExhausted(err error) bool {
	_, ok := err.(exhaustedError)
	return ok
}

// malformedError signals a conditioning entry that references a missing or
// broken resource capability.
type malformedError struct {
	branch string
	reason string
}

func (e malformedError) Error() string {
	if e.branch == "" {
		return "malformed conditioning: " + e.reason
	}
	return fmt.Sprintf("malformed conditioning in branch %q: %s", e.branch, e.reason)
}

func errMalformed(branch, reason string) error {
	return malformedError{branch: branch, reason: reason}
}

// errChainCycle signals a control chain that revisits one of its own nodes.
type errChainCycle struct{}

func (errChainCycle) Error() string { return "control chain cycle detected" }

// IsChainCycle reports whether err indicates a cyclic control chain.
func IsChainCycle(err error) bool {
	_, ok := err.(errChainCycle)
	return ok
}

// IsMalformedConditioning reports whether err arose from walking the
// conditioning set. Chain cycles count: they abort preparation before any
// load request the same way a missing capability does.
func IsMalformedConditioning(err error) bool {
	if _, ok := err.(malformedError); ok {
		return true
	}
	return IsChainCycle(err)
}
