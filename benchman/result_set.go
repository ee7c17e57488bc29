package benchman

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// ErrPoisoned is the panic value raised when the result set is accessed after
// a writer panicked while holding the lock. The results can no longer be
// trusted, so there is no way to recover from it.
var ErrPoisoned = errors.New("benchman: result set poisoned by a panic during a write")

// resultSet maps each tag to its results. tagIndices keeps the order in which
// tags were first reserved so reports are deterministic.
type resultSet struct {
	mu         sync.RWMutex
	poisoned   bool
	tagIndices []string
	reserved   map[string]struct{}
	h          map[string]*benchResult
}

func newResultSet() *resultSet {
	return &resultSet{
		tagIndices: []string{},
		reserved:   map[string]struct{}{},
		h:          map[string]*benchResult{},
	}
}

// write runs fn with exclusive access. If fn panics, the set stays poisoned.
func (s *resultSet) write(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.poisoned {
		panic(ErrPoisoned)
	}

	s.poisoned = true
	fn()
	s.poisoned = false
}

func (s *resultSet) read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.poisoned {
		panic(ErrPoisoned)
	}

	fn()
}

func (s *resultSet) reserveTag(tag string) {
	s.write(func() {
		if _, ok := s.reserved[tag]; ok {
			return
		}
		s.reserved[tag] = struct{}{}
		s.tagIndices = append(s.tagIndices, tag)
	})
}

func (s *resultSet) addResult(tag string, d time.Duration) {
	s.write(func() {
		r, ok := s.h[tag]
		if !ok {
			r = newBenchResult()
			s.h[tag] = r
		}
		r.add(d)
	})
}

func (s *resultSet) tags() []string {
	var tags []string
	s.read(func() {
		tags = make([]string, len(s.tagIndices))
		copy(tags, s.tagIndices)
	})
	return tags
}

func (s *resultSet) n(tag string) int {
	var n int
	s.read(func() {
		if r, ok := s.h[tag]; ok {
			n = r.n()
		}
	})
	return n
}

// snapshot copies the results of the requested tags in the requested order.
// Tags without any recorded sample are skipped, as are repeated tags.
func (s *resultSet) snapshot(tags []string) []tagResult {
	var entries []tagResult
	s.read(func() {
		entries = s.collect(tags)
	})
	return entries
}

// snapshotAll copies every recorded tag in reservation order.
func (s *resultSet) snapshotAll() []tagResult {
	var entries []tagResult
	s.read(func() {
		entries = s.collect(s.tagIndices)
	})
	return entries
}

// collect must be called with the read lock held.
func (s *resultSet) collect(tags []string) []tagResult {
	entries := make([]tagResult, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}

		if r, ok := s.h[tag]; ok && r.n() > 0 {
			entries = append(entries, tagResult{tag: tag, result: r.clone()})
		}
	}
	return entries
}

// renderAll writes every recorded tag in reservation order while holding the
// read lock, avoiding the copies made by snapshotAll.
func (s *resultSet) renderAll(w io.Writer, scheme *colorScheme) (err error) {
	s.read(func() {
		for _, tag := range s.tagIndices {
			r, ok := s.h[tag]
			if !ok || r.n() == 0 {
				continue
			}
			if err = writeTagResult(w, scheme, tag, r); err != nil {
				return
			}
		}
	})
	return err
}

type tagResult struct {
	tag    string
	result *benchResult
}

func writeTagResult(w io.Writer, scheme *colorScheme, tag string, r *benchResult) error {
	if _, err := scheme.tag.Fprintln(w, fmt.Sprintf("%s (%d samples)", tag, r.n())); err != nil {
		return fmt.Errorf("could not write header of tag %s: err = %w", tag, err)
	}
	if _, err := io.WriteString(w, r.String()); err != nil {
		return fmt.Errorf("could not write results of tag %s: err = %w", tag, err)
	}
	return nil
}
