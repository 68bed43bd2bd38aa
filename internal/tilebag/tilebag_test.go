package tilebag

import "testing"

func TestDrawProactiveRefill(t *testing.T) {
	b := New(English, 1)
	// Drain close to the threshold, then one more draw should trigger a
	// refill rather than ever returning fewer tiles than requested.
	b.Draw(batchSize - refillThreshold + 1)
	got := b.Draw(10)
	if len(got) != 10 {
		t.Fatalf("Draw(10) returned %d tiles", len(got))
	}
	if b.Remaining() < refillThreshold {
		t.Fatalf("expected bag to have refilled above threshold, got %d remaining", b.Remaining())
	}
}

func TestReturnReshuffles(t *testing.T) {
	b := New(English, 2)
	before := b.Remaining()
	drawn := b.Draw(5)
	b.Return(drawn)
	if b.Remaining() != before {
		t.Fatalf("expected remaining tile count restored, got %d want %d", b.Remaining(), before)
	}
}

func TestKoreanFillProducesOnlyKnownJamos(t *testing.T) {
	b := New(Korean, 3)
	drawn := b.Draw(50)
	for _, r := range drawn {
		_, cho := koreanJamoWeights.cho[r]
		_, jung := koreanJamoWeights.jung[r]
		_, jong := koreanJamoWeights.jong[r]
		if !cho && !jung && !jong {
			t.Fatalf("unexpected jamo drawn from korean bag: %q", r)
		}
	}
}
