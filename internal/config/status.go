package config

import (
	"sort"

	"go.uber.org/multierr"
)

// Status accumulates the failures of one load attempt. Every ErrorKind can
// be recorded, independent of its numeric value.
type Status struct {
	kinds  map[ErrorKind]struct{}
	errors []error
}

// Record adds err to the status. Nil errors are ignored.
func (s *Status) Record(err error) {
	if err == nil {
		return
	}
	if s.kinds == nil {
		s.kinds = make(map[ErrorKind]struct{})
	}
	s.kinds[KindOf(err)] = struct{}{}
	s.errors = append(s.errors, err)
}

// Empty reports whether nothing was recorded.
func (s *Status) Empty() bool {
	return len(s.errors) == 0
}

// Has reports whether an error of the given kind was recorded.
func (s *Status) Has(kind ErrorKind) bool {
	_, ok := s.kinds[kind]
	return ok
}

// Kinds returns each distinct recorded kind once, in ascending order.
func (s *Status) Kinds() []ErrorKind {
	kinds := make([]ErrorKind, 0, len(s.kinds))
	for k := range s.kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Errors returns the recorded errors in the order they occurred.
func (s *Status) Errors() []error {
	return append([]error(nil), s.errors...)
}

// Len returns the number of recorded errors.
func (s *Status) Len() int {
	return len(s.errors)
}

// Err combines all recorded errors, or returns nil.
func (s *Status) Err() error {
	return multierr.Combine(s.errors...)
}
