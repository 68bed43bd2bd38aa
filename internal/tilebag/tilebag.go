// Package tilebag implements the shuffled per-room letter queue: weighted
// batch refill, threshold-triggered proactive top-up, and return-and-
// reshuffle for rerolled tiles.
package tilebag

import (
	"encoding/json"
	"log"
	"math/rand"
	"os"
	"sync"
)

const (
	// batchSize is how many letters a single refill batch generates.
	batchSize = 100
	// refillThreshold is the remaining-tile count below which the next
	// Draw proactively tops the bag up before popping, so a drawer never
	// observes the bag running dry mid-call.
	refillThreshold = 20

	choRatio  = 0.42
	jungRatio = 0.46
	jongRatio = 0.12
)

// Language selects which weighted table backs a bag's refills.
type Language string

const (
	English Language = "en"
	Korean  Language = "ko"
)

// TileBag is a shuffled queue of letters drawn from the tail. It is not
// safe for concurrent use on its own; callers (RoomEngine) serialize access
// under the room lock, matching the rest of this module's locking model.
type TileBag struct {
	lang  Language
	rng   *rand.Rand
	tiles []rune
}

// New returns a TileBag pre-filled with one batch.
func New(lang Language, seed int64) *TileBag {
	b := &TileBag{lang: lang, rng: rand.New(rand.NewSource(seed))}
	b.fill()
	return b
}

// Remaining reports how many tiles are currently queued.
func (b *TileBag) Remaining() int { return len(b.tiles) }

// Draw pops count letters from the tail, refilling first if the bag would
// otherwise run low — this mirrors the original bag's "refill before pop"
// order, not "pop then refill after the fact".
func (b *TileBag) Draw(count int) []rune {
	if len(b.tiles) < refillThreshold {
		b.fill()
	}
	for len(b.tiles) < count {
		b.fill()
	}
	out := make([]rune, count)
	for i := 0; i < count; i++ {
		last := len(b.tiles) - 1
		out[i] = b.tiles[last]
		b.tiles = b.tiles[:last]
	}
	return out
}

// Return puts previously drawn tiles (e.g. a rerolled hand) back into the
// bag and reshuffles.
func (b *TileBag) Return(tiles []rune) {
	b.tiles = append(b.tiles, tiles...)
	b.shuffle()
}

func (b *TileBag) fill() {
	var batch []rune
	if b.lang == Korean {
		batch = b.fillKorean()
	} else {
		batch = b.fillEnglish()
	}
	b.tiles = append(b.tiles, batch...)
	b.shuffle()
	log.Printf("[tilebag] refilled lang=%s batch=%d total=%d", b.lang, len(batch), len(b.tiles))
}

func (b *TileBag) shuffle() {
	b.rng.Shuffle(len(b.tiles), func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	})
}

func (b *TileBag) fillEnglish() []rune {
	return weightedSample(b.rng, englishWeights, batchSize)
}

func (b *TileBag) fillKorean() []rune {
	choCount := int(float64(batchSize) * choRatio)
	jungCount := int(float64(batchSize) * jungRatio)
	jongCount := batchSize - choCount - jungCount

	out := make([]rune, 0, batchSize)
	out = append(out, weightedSample(b.rng, koreanJamoWeights.cho, choCount)...)
	out = append(out, weightedSample(b.rng, koreanJamoWeights.jung, jungCount)...)
	out = append(out, weightedSample(b.rng, koreanJamoWeights.jong, jongCount)...)
	return out
}

func weightedSample(rng *rand.Rand, weights map[rune]float64, n int) []rune {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	out := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		target := rng.Float64() * total
		var acc float64
		for r, w := range weights {
			acc += w
			if acc >= target {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// koreanSidecar is the on-disk shape of an optional weight override file.
type koreanSidecar struct {
	Cho  map[string]float64 `json:"cho"`
	Jung map[string]float64 `json:"jung"`
	Jong map[string]float64 `json:"jong"`
}

var loadOnce sync.Once

// LoadKoreanWeights overrides the baked-in Korean jamo weight tables from a
// JSON sidecar at path. A missing or malformed file is logged and ignored —
// the baked-in fallback table remains in effect, matching the original
// loader's tolerance for a missing weights file.
func LoadKoreanWeights(path string) {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[tilebag] no korean weights sidecar at %s, using built-in table: %v", path, err)
			return
		}
		var sc koreanSidecar
		if err := json.Unmarshal(data, &sc); err != nil {
			log.Printf("[tilebag] malformed korean weights sidecar %s, using built-in table: %v", path, err)
			return
		}
		koreanJamoWeights.cho = runeWeights(sc.Cho)
		koreanJamoWeights.jung = runeWeights(sc.Jung)
		koreanJamoWeights.jong = runeWeights(sc.Jong)
		log.Printf("[tilebag] loaded korean weights override from %s", path)
	})
}

func runeWeights(in map[string]float64) map[rune]float64 {
	out := make(map[rune]float64, len(in))
	for k, v := range in {
		for _, r := range k {
			out[r] = v
			break
		}
	}
	return out
}
