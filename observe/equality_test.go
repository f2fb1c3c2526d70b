package observe

import "testing"

func TestValuesEqual(t *testing.T) {
	shared := &struct{ n int }{n: 1}
	other := &struct{ n int }{n: 1}
	sharedSlice := []int{1, 2}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil vs value", nil, "x", false},
		{"equal strings", "x", "x", true},
		{"different strings", "x", "y", false},
		{"equal ints", 3, 3, true},
		{"int vs string", 3, "3", false},
		{"same pointer", shared, shared, true},
		{"distinct pointers equal contents", shared, other, false},
		{"same slice header", sharedSlice, sharedSlice, true},
		{"distinct slices equal contents", []int{1, 2}, []int{1, 2}, false},
		{"incomparable struct values", struct{ V any }{V: []int{1}}, struct{ V any }{V: []int{1}}, false},
	}

	for _, tt := range tests {
		if got := valuesEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: valuesEqual(%v, %v) = %v, want %v", tt.name, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestObject_SetStructWrappingSliceDoesNotPanic(t *testing.T) {
	type wrapper struct {
		V any
	}

	o := New()

	var notifications int
	o.Subscribe(func(sender any, property string) { notifications++ })

	if _, err := o.Set("W", wrapper{V: []int{1}}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// The type is statically comparable but the held slice is not; the
	// repeated Set must fall back to treating the values as different
	// rather than panicking on ==.
	changed, err := o.Set("W", wrapper{V: []int{1}})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !changed {
		t.Error("expected incomparable values to count as a change")
	}
	if notifications != 2 {
		t.Errorf("expected 2 notifications, got %d", notifications)
	}
}

func TestValuesEqual_DrivesSetShortCircuit(t *testing.T) {
	o := New()

	var notifications int
	o.Subscribe(func(sender any, property string) { notifications++ })

	ptr := &struct{ n int }{n: 1}
	if _, err := o.Set("Ref", ptr); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := o.Set("Ref", ptr); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if notifications != 1 {
		t.Errorf("expected 1 notification for repeated identical pointer, got %d", notifications)
	}

	// Equal contents but a different reference still counts as a change.
	if _, err := o.Set("Ref", &struct{ n int }{n: 1}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if notifications != 2 {
		t.Errorf("expected 2 notifications after new reference, got %d", notifications)
	}
}
