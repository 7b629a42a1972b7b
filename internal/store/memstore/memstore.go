// Package memstore is an in-process key/value backend.
package memstore

import "errors"

// ErrWriteFailed is returned by Set while FailWrites is on.
var ErrWriteFailed = errors.New("memstore: write failed")

// Store holds blobs in a map. The zero value is ready to use.
type Store struct {
	data map[string]string

	// FailWrites makes Set return ErrWriteFailed without storing anything.
	FailWrites bool
	// Writes counts successful Set calls.
	Writes int
}

// New returns a Store pre-populated with seed.
func New(seed map[string]string) *Store {
	s := &Store{data: make(map[string]string, len(seed))}
	for k, v := range seed {
		s.data[k] = v
	}
	return s
}

func (s *Store) Get(key string) (string, bool, error) {
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(key, value string) error {
	if s.FailWrites {
		return ErrWriteFailed
	}
	if s.data == nil {
		s.data = map[string]string{}
	}
	s.data[key] = value
	s.Writes++
	return nil
}
