package board

import "testing"

func TestBridgeCreatesNewGroup(t *testing.T) {
	idx := NewPendingGroupIndex()
	pt := idx.Place(Point{0, 0}, 'A', "p1", "#fff", 0)
	if pt.HGroup == "" || pt.VGroup == "" {
		t.Fatalf("expected both groups assigned on an isolated tile, got h=%q v=%q", pt.HGroup, pt.VGroup)
	}
}

func TestBridgeExtendsExistingGroup(t *testing.T) {
	idx := NewPendingGroupIndex()
	a := idx.Place(Point{0, 0}, 'A', "p1", "#fff", 0)
	b := idx.Place(Point{1, 0}, 'B', "p1", "#fff", 1)
	if a.HGroup != b.HGroup {
		t.Fatalf("adjacent horizontal tiles should share a group: %q vs %q", a.HGroup, b.HGroup)
	}
	if a.VGroup == b.VGroup {
		t.Fatalf("non-adjacent vertical tiles should not share a group")
	}
}

func TestBridgeMergesTwoGroups(t *testing.T) {
	idx := NewPendingGroupIndex()
	left := idx.Place(Point{0, 0}, 'A', "p1", "#fff", 0)
	right := idx.Place(Point{2, 0}, 'C', "p1", "#fff", 1)
	if left.HGroup == right.HGroup {
		t.Fatalf("non-adjacent tiles should not start in the same group")
	}
	bridgeTile := idx.Place(Point{1, 0}, 'B', "p1", "#fff", 2)

	if left.HGroup != bridgeTile.HGroup || right.HGroup != bridgeTile.HGroup {
		t.Fatalf("placing the bridging tile should merge both groups: left=%q bridge=%q right=%q",
			left.HGroup, bridgeTile.HGroup, right.HGroup)
	}

	points := idx.GroupPoints(Horizontal, bridgeTile.HGroup)
	if len(points) != 3 {
		t.Fatalf("merged group should contain 3 points, got %d", len(points))
	}
}

func TestMergeTieBreakIsDeterministic(t *testing.T) {
	// Regardless of which side is placed first, the merged group must
	// survive under the lexicographically smallest of the two existing ids.
	idx := NewPendingGroupIndex()
	left := idx.Place(Point{0, 0}, 'A', "p1", "#fff", 0)
	right := idx.Place(Point{2, 0}, 'C', "p1", "#fff", 1)
	want := left.HGroup
	if right.HGroup < want {
		want = right.HGroup
	}
	bridge := idx.Place(Point{1, 0}, 'B', "p1", "#fff", 2)
	if bridge.HGroup != want {
		t.Fatalf("survivor group id = %q, want the smaller id %q", bridge.HGroup, want)
	}
}

func TestRemoveGroupDetachesOtherDirection(t *testing.T) {
	idx := NewPendingGroupIndex()
	idx.Place(Point{0, 0}, 'A', "p1", "#fff", 0)
	b := idx.Place(Point{1, 0}, 'B', "p1", "#fff", 1)
	cross := idx.Place(Point{1, 1}, 'D', "p1", "#fff", 2)
	_ = idx.Place(Point{1, -1}, 'E', "p1", "#fff", 3)

	vgid := cross.VGroup
	if vgid == "" || vgid != b.VGroup {
		t.Fatalf("expected B and D to share a vertical group, got b=%q d=%q", b.VGroup, vgid)
	}
	idx.RemoveGroup(Horizontal, b.HGroup)

	if _, ok := idx.Get(Point{1, 0}); ok {
		t.Fatalf("expected horizontal group tiles removed")
	}
	if !idx.HasActiveGroup(Vertical, vgid) {
		t.Fatalf("expected the vertical group to survive with its remaining tiles")
	}
	remaining := idx.GroupPoints(Vertical, vgid)
	if len(remaining) != 2 {
		t.Fatalf("expected vertical group to shrink to the two surviving tiles, got %d", len(remaining))
	}
}

func TestDissolveGroupPreservesCrossDirectionMembership(t *testing.T) {
	idx := NewPendingGroupIndex()
	a := idx.Place(Point{0, 0}, 'A', "p1", "#fff", 0)
	b := idx.Place(Point{1, 0}, 'B', "p1", "#fff", 1)
	_ = idx.Place(Point{0, 1}, 'C', "p1", "#fff", 2)

	hgid := a.HGroup
	vgid := a.VGroup

	idx.DissolveGroup(Horizontal, hgid)

	if a.HGroup != "" || b.HGroup != "" {
		t.Fatalf("expected both tiles to lose their horizontal group id, got a=%q b=%q", a.HGroup, b.HGroup)
	}
	if a.VGroup != vgid {
		t.Fatalf("expected a's vertical group membership to survive dissolution, got %q want %q", a.VGroup, vgid)
	}
	if _, ok := idx.Get(Point{0, 0}); !ok {
		t.Fatalf("DissolveGroup must not remove tiles from the index")
	}
	if _, ok := idx.Get(Point{1, 0}); !ok {
		t.Fatalf("DissolveGroup must not remove tiles from the index")
	}
	if idx.HasActiveGroup(Horizontal, hgid) {
		t.Fatalf("the dissolved horizontal group id should no longer be active")
	}
}
