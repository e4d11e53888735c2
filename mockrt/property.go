package mockrt

// Property backs a mocked property. The zero value is unset and reads as
// the zero T.
type Property[T any] struct {
	value T
	set   bool
}

// Get returns the stored value.
func (p *Property[T]) Get() T {
	return p.value
}

// Set stores v.
func (p *Property[T]) Set(v T) {
	p.value = v
	p.set = true
}

// IsSet reports whether a value was stored.
func (p *Property[T]) IsSet() bool {
	return p.set
}

// Clear drops the stored value.
func (p *Property[T]) Clear() {
	var zero T

	p.value = zero
	p.set = false
}
