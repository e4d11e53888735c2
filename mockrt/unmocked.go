package mockrt

import (
	"fmt"
)

// UnmockedMemberInvokedError is the panic value raised when a member whose
// slot was never configured is invoked outside fallback mode.
type UnmockedMemberInvokedError struct {
	// Slot is the backing field that was left unset, e.g. "MockAdd".
	Slot string
}

func (e *UnmockedMemberInvokedError) Error() string {
	return fmt.Sprintf("method '%s' was called, but no mock implementation was provided", e.Slot)
}

// Unmocked handles a call to an unconfigured member returning R: the zero
// R in fallback mode, a panic otherwise.
func Unmocked[R any](m *Mock, slot string) R {
	if !m.ReturnDefaultIfNotMocked {
		panic(&UnmockedMemberInvokedError{Slot: slot})
	}

	var zero R

	return zero
}

// UnmockedVoid handles a call to an unconfigured member without a result.
func UnmockedVoid(m *Mock, slot string) {
	if !m.ReturnDefaultIfNotMocked {
		panic(&UnmockedMemberInvokedError{Slot: slot})
	}
}

// UnmockedAsync handles a call to an unconfigured async member: a task
// already completed with the zero R in fallback mode, a panic otherwise.
func UnmockedAsync[R any](m *Mock, slot string) *Task[R] {
	return Resolved(Unmocked[R](m, slot))
}
