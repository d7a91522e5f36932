package bitmap

import "testing"

func TestRegistryRegisterGet(t *testing.T) {
	r := NewRegistry()
	b, _ := New(2, 2, Depth8, Depth8)
	h := r.Register(b)

	got, err := r.Get(h)
	if err != nil {
		t.Fatal(err)
	}
	if got != b {
		t.Fatal("Get did not return the registered bitmap")
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
}

func TestRegistryGetUnknownHandle(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get(999); err == nil {
		t.Fatal("expected error for unknown handle")
	}
}

func TestRegistryHandlesAreStableAcrossReplace(t *testing.T) {
	r := NewRegistry()
	b1, _ := New(2, 2, Depth8, Depth8)
	h := r.Register(b1)

	b2, _ := New(4, 4, Depth8, Depth8)
	if err := r.Replace(h, b2); err != nil {
		t.Fatal(err)
	}

	got, err := r.Get(h)
	if err != nil {
		t.Fatal(err)
	}
	if got != b2 {
		t.Fatal("Replace did not swap the underlying bitmap for the same handle")
	}
}

func TestRegistryReplaceUnknownHandle(t *testing.T) {
	r := NewRegistry()
	b, _ := New(2, 2, Depth8, Depth8)
	if err := r.Replace(42, b); err == nil {
		t.Fatal("expected error replacing unknown handle")
	}
}

func TestRegistryRelease(t *testing.T) {
	r := NewRegistry()
	b, _ := New(2, 2, Depth8, Depth8)
	h := r.Register(b)
	r.Release(h)
	if r.Len() != 0 {
		t.Fatalf("Len after release = %d, want 0", r.Len())
	}
	if _, err := r.Get(h); err == nil {
		t.Fatal("expected error getting released handle")
	}
}

func TestRegistryDistinctHandles(t *testing.T) {
	r := NewRegistry()
	b1, _ := New(2, 2, Depth8, Depth8)
	b2, _ := New(2, 2, Depth8, Depth8)
	h1 := r.Register(b1)
	h2 := r.Register(b2)
	if h1 == h2 {
		t.Fatal("expected distinct handles for distinct registrations")
	}
}
