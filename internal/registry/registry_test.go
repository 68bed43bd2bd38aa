package registry

import "testing"

func TestGetOrCreateIsIdempotent(t *testing.T) {
	reg := New(nil, nil)
	r1 := reg.GetOrCreate("room1", "en", "normal", 4)
	r2 := reg.GetOrCreate("room1", "en", "normal", 4)
	if r1 != r2 {
		t.Fatalf("expected the same room instance on a second GetOrCreate")
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestJoinableRoom(t *testing.T) {
	reg := New(nil, nil)
	if _, ok := reg.JoinableRoom(); ok {
		t.Fatalf("expected no joinable room before any exist")
	}
	reg.GetOrCreate("room1", "en", "normal", 4)
	code, ok := reg.JoinableRoom()
	if !ok || code != "room1" {
		t.Fatalf("JoinableRoom() = %q,%v want room1,true", code, ok)
	}
}

func TestRemoveOnDestroy(t *testing.T) {
	reg := New(nil, nil)
	r := reg.GetOrCreate("room1", "en", "normal", 4)
	r.DestroyRoom("") // no players seated yet, so Host() == "" matches playerID == ""
	if reg.Count() != 0 {
		t.Fatalf("expected room removed after DestroyRoom, Count() = %d", reg.Count())
	}
}
