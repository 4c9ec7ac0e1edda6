// Package nullable reports whether a value's optional fields are all unset.
package nullable

import "github.com/samber/lo"

// Fields is implemented by types whose optional fields can be listed.
// Each entry is the field value itself: a pointer, slice, map or interface
// that is nil when the field is absent.
type Fields interface {
	NullableFields() []any
}

// IsEmpty reports whether every field listed by v is nil. A nil v and a
// type with no fields are empty.
func IsEmpty(v Fields) bool {
	if lo.IsNil(v) {
		return true
	}
	return lo.EveryBy(v.NullableFields(), lo.IsNil)
}
