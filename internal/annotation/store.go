package annotation

import (
	"nano-analyzer/pkg/geometry"
)

// Store is the ordered sequence of committed annotations plus at most one
// draft. Insertion order is the display index and drives aspect pairing.
//
// Store is not safe for concurrent use; app.State serializes access.
type Store struct {
	committed []Object
	draft     *Object
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Begin starts a new draft at a, dropping any unfinished one.
func (s *Store) Begin(kind Kind, a geometry.PointInt, scale float64) {
	s.draft = &Object{A: a, Scale: scale, Kind: kind}
}

// Drag moves the draft's second endpoint. It reports false without a draft.
func (s *Store) Drag(b geometry.PointInt) bool {
	if s.draft == nil {
		return false
	}
	s.draft.setB(b)
	return true
}

// Commit places the draft's second endpoint, appends it to the committed
// sequence and clears the draft.
func (s *Store) Commit(b geometry.PointInt) (Object, bool) {
	if s.draft == nil {
		return Object{}, false
	}
	s.draft.setB(b)
	obj := *s.draft
	s.committed = append(s.committed, obj)
	s.draft = nil
	return obj, true
}

// Undo removes and returns the most recently committed annotation. The
// draft is left alone.
func (s *Store) Undo() (Object, bool) {
	n := len(s.committed)
	if n == 0 {
		return Object{}, false
	}
	obj := s.committed[n-1]
	s.committed = s.committed[:n-1]
	return obj, true
}

// Clear removes every committed annotation and the draft.
func (s *Store) Clear() {
	s.committed = nil
	s.draft = nil
}

// Draft returns a copy of the in-progress annotation, if any.
func (s *Store) Draft() (Object, bool) {
	if s.draft == nil {
		return Object{}, false
	}
	return *s.draft, true
}

// Objects returns a copy of the committed annotations in insertion order.
func (s *Store) Objects() []Object {
	out := make([]Object, len(s.committed))
	copy(out, s.committed)
	return out
}

// Len returns the number of committed annotations.
func (s *Store) Len() int {
	return len(s.committed)
}
