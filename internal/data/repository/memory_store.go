package repository

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"tour-booking/internal/data/entity"
)

// memStore is an in-process document table. Documents are deep-copied on
// the way in and out so callers never share memory with the store.
type memStore[T any] struct {
	mu   sync.RWMutex
	docs map[entity.ID]memRow[T]
	seq  int64

	base func(*T) *entity.Base
	// keys returns the unique keys of a document; empty keys are skipped.
	keys func(*T) []string
}

type memRow[T any] struct {
	doc T
	seq int64
}

func newMemStore[T any](base func(*T) *entity.Base, keys func(*T) []string) *memStore[T] {
	if keys == nil {
		keys = func(*T) []string { return nil }
	}
	return &memStore[T]{
		docs: make(map[entity.ID]memRow[T]),
		base: base,
		keys: keys,
	}
}

func clone[T any](doc *T) T {
	data, err := json.Marshal(doc)
	if err != nil {
		panic("repository: clone marshal: " + err.Error())
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		panic("repository: clone unmarshal: " + err.Error())
	}
	return out
}

// conflicts reports whether doc shares a unique key with any other document.
// Caller holds the lock.
func (s *memStore[T]) conflicts(doc *T) bool {
	id := s.base(doc).ID
	for _, key := range s.keys(doc) {
		if key == "" {
			continue
		}
		for otherID, row := range s.docs {
			if otherID == id {
				continue
			}
			for _, other := range s.keys(&row.doc) {
				if other == key {
					return true
				}
			}
		}
	}
	return false
}

func (s *memStore[T]) insert(doc *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.base(doc).ID
	if _, ok := s.docs[id]; ok || s.conflicts(doc) {
		return ErrDuplicate
	}
	s.seq++
	s.docs[id] = memRow[T]{doc: clone(doc), seq: s.seq}
	return nil
}

// replace overwrites the stored document if match accepts the current one.
func (s *memStore[T]) replace(doc *T, match func(current *T) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.base(doc).ID
	row, ok := s.docs[id]
	if !ok || (match != nil && !match(&row.doc)) {
		return ErrNotFound
	}
	if s.conflicts(doc) {
		return ErrDuplicate
	}
	row.doc = clone(doc)
	s.docs[id] = row
	return nil
}

// update applies fn to a copy of the stored document under the write lock,
// stores it unless it breaks a unique key, and returns a copy of the result.
func (s *memStore[T]) update(id entity.ID, fn func(doc *T)) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	next := clone(&row.doc)
	fn(&next)
	if s.conflicts(&next) {
		return nil, ErrDuplicate
	}
	row.doc = clone(&next)
	s.docs[id] = row

	out := clone(&row.doc)
	return &out, nil
}

func (s *memStore[T]) delete(id entity.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *memStore[T]) findOne(match func(*T) bool) *T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.docs {
		if match(&row.doc) {
			out := clone(&row.doc)
			return &out
		}
	}
	return nil
}

func (s *memStore[T]) findByID(id entity.ID) *T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.docs[id]
	if !ok {
		return nil
	}
	out := clone(&row.doc)
	return &out
}

// sorted returns matching rows newest first. Caller holds the lock.
func (s *memStore[T]) sorted(match func(*T) bool) []memRow[T] {
	rows := make([]memRow[T], 0, len(s.docs))
	for _, row := range s.docs {
		if match == nil || match(&row.doc) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := s.base(&rows[i].doc).CreatedAt, s.base(&rows[j].doc).CreatedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return rows[i].seq > rows[j].seq
	})
	return rows
}

// list pages over matching documents newest first. A zero page.Limit means
// no limit.
func (s *memStore[T]) list(match func(*T) bool, page Page) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.sorted(match)
	if page.Offset < 0 || page.Offset >= len(rows) {
		return []*T{}
	}
	rows = rows[page.Offset:]
	if page.Limit > 0 && len(rows) > page.Limit {
		rows = rows[:page.Limit]
	}

	out := make([]*T, 0, len(rows))
	for i := range rows {
		doc := clone(&rows[i].doc)
		out = append(out, &doc)
	}
	return out
}

func (s *memStore[T]) count(match func(*T) bool) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, row := range s.docs {
		if match == nil || match(&row.doc) {
			n++
		}
	}
	return n
}

// containsFold reports whether any of values contains term, ignoring case.
func containsFold(term string, values ...string) bool {
	term = strings.ToLower(term)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}
