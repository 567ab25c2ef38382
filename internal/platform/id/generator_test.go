package id

import "testing"

func TestUUIDGenerator(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
	if !Valid(first) || !Valid(second) {
		t.Fatalf("expected valid uuids: %s %s", first, second)
	}
	if Valid("not-a-uuid") {
		t.Fatalf("expected invalid uuid to be rejected")
	}
}
