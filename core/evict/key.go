package evict

import "fmt"

// Key wraps a map key that may be absent (null). The zero Key is the null key.
//
// Keys are comparable: two null keys are equal, and a null key never equals a
// present key, even when the present key holds K's zero value.
type Key[K comparable] struct {
	v     K
	valid bool
}

// KeyOf returns a present key holding k.
func KeyOf[K comparable](k K) Key[K] { return Key[K]{v: k, valid: true} }

// NullKey returns the null key for K.
func NullKey[K comparable]() Key[K] { return Key[K]{} }

// IsNull reports whether k is the null key.
func (k Key[K]) IsNull() bool { return !k.valid }

// Value returns the wrapped key. ok is false for the null key.
func (k Key[K]) Value() (v K, ok bool) { return k.v, k.valid }

func (k Key[K]) String() string {
	if !k.valid {
		return "<nil>"
	}
	return fmt.Sprintf("%v", k.v)
}

// GoString is used for shard routing and single-flight keys where two distinct
// keys must not collapse into the same representation.
func (k Key[K]) GoString() string {
	if !k.valid {
		return "<nil>"
	}
	return fmt.Sprintf("%T:%#v", k.v, k.v)
}
