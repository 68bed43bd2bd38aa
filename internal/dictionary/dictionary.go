// Package dictionary is the room server's read-only word store: exact
// lookup, random sampling by length, and prefix/suffix pruning via a
// bidirectional trie, built once at process start from the persistence
// boundary and never mutated afterward.
package dictionary

import (
	"context"
	"log"
	"math/rand"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/scythe504/yeet-backend/internal/store"
)

type entry struct {
	length int
	score  int
}

// Dictionary is safe for concurrent read access once Load has returned: the
// word/length maps and tries are never mutated afterward, and the LRU cache
// is internally synchronized.
type Dictionary struct {
	words         map[string]entry
	byLength      map[int][]string
	tries         map[string]*BidirectionalTrie // keyed by language
	validateCache *lru.Cache
}

// cacheSize bounds the LRU guarding repeated cross-word validations within
// a single placement burst; sized generously since keys are short strings.
const cacheSize = 4096

// Load hydrates a Dictionary from r in one pass. It is the only mutation
// this type ever undergoes.
func Load(ctx context.Context, r store.DictionaryReader) (*Dictionary, error) {
	rows, err := r.LoadWords(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{
		words:    make(map[string]entry, len(rows)),
		byLength: make(map[int][]string),
		tries:    make(map[string]*BidirectionalTrie),
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	d.validateCache = cache

	for _, row := range rows {
		word := strings.ToUpper(row.Word)
		d.words[word] = entry{length: row.Length, score: row.Score}
		d.byLength[row.Length] = append(d.byLength[row.Length], word)

		trie, ok := d.tries[row.Language]
		if !ok {
			trie = NewBidirectionalTrie()
			d.tries[row.Language] = trie
		}
		trie.Insert(word)
	}

	log.Printf("[dictionary] loaded %d words across %d languages", len(d.words), len(d.tries))
	return d, nil
}

// Lookup reports whether word is a known word, and its score if so.
func (d *Dictionary) Lookup(word string) (score int, ok bool) {
	key := strings.ToUpper(word)
	if v, cached := d.validateCache.Get(key); cached {
		e := v.(entry)
		return e.score, e.score >= 0
	}
	e, found := d.words[key]
	if !found {
		d.validateCache.Add(key, entry{score: -1})
		return 0, false
	}
	d.validateCache.Add(key, e)
	return e.score, true
}

// RandomWord samples uniformly from words whose length is >= minLength and
// reports false when nothing qualifies. It does not retry with a shorter
// minimum; the 10-then-8 fallback for starting words is done by its caller
// (RoomEngine.initializeStartingWordsLocked).
func (d *Dictionary) RandomWord(minLength int) (string, bool) {
	var pool []string
	for length, words := range d.byLength {
		if length >= minLength {
			pool = append(pool, words...)
		}
	}
	if len(pool) == 0 {
		return "", false
	}
	return pool[rand.Intn(len(pool))], true
}

// Trie returns the bidirectional trie for lang, or a fresh permissive one
// if the language was never loaded, so pruning never blocks a placement
// when there is nothing to check against. Lookup is not permissive: it
// reports false for any word that was not loaded.
func (d *Dictionary) Trie(lang string) *BidirectionalTrie {
	if t, ok := d.tries[lang]; ok {
		return t
	}
	return NewBidirectionalTrie()
}
