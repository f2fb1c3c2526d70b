package observe

import "fmt"

// SetField updates a field held outside the object's property map, raising a
// change notification through o when the value actually changes. It mirrors
// Set's short-circuit for fields that callers keep as typed struct members
// rather than map entries.
func SetField[T comparable](o *Object, field *T, value T, name string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("%w: property name is empty", ErrInvalidArgument)
	}
	if *field == value {
		return false, nil
	}

	*field = value
	o.notify(o, name)
	return true, nil
}
