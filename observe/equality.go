package observe

import "reflect"

// valuesEqual reports whether a property mutation should be treated as a
// no-op: reference equality for reference-like kinds, value equality
// otherwise. Incomparable values never compare equal, so a Set always
// mutates them.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.Map, reflect.Slice, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}

	// Comparability must be checked on the dynamic value: a struct type
	// with an interface field is statically comparable but panics under ==
	// when that field holds a slice or map.
	if !va.Comparable() {
		return false
	}
	return va.Equal(vb)
}
