package benchman

import (
	"fmt"
	"io"
	"strings"
)

// Slice is an immutable snapshot of a subset of tags. It does not track
// samples recorded after it was taken.
type Slice struct {
	label   string
	entries []tagResult
	index   map[string]*benchResult
}

func newSlice(label string, entries []tagResult) *Slice {
	index := make(map[string]*benchResult, len(entries))
	for _, e := range entries {
		index[e.tag] = e.result
	}
	return &Slice{
		label:   label,
		entries: entries,
		index:   index,
	}
}

func (s *Slice) Label() string {
	return s.label
}

// Tags returns the tags present in the slice in the order they were requested.
func (s *Slice) Tags() []string {
	tags := make([]string, len(s.entries))
	for i, e := range s.entries {
		tags[i] = e.tag
	}
	return tags
}

func (s *Slice) Has(tag string) bool {
	_, ok := s.index[tag]
	return ok
}

// Len returns the number of samples tag had when the slice was taken.
func (s *Slice) Len(tag string) int {
	r, ok := s.index[tag]
	if !ok {
		return 0
	}
	return r.n()
}

func (s *Slice) Summary(tag string) (Summary, bool) {
	r, ok := s.index[tag]
	if !ok {
		return Summary{}, false
	}
	return r.summary(), true
}

// Print writes the slice to w, coloring the headers if w is a terminal.
func (s *Slice) Print(w io.Writer) error {
	return s.render(w, colorSchemeFor(w))
}

func (s *Slice) String() string {
	var b strings.Builder
	_ = s.render(&b, plainColorScheme())
	return b.String()
}

func (s *Slice) render(w io.Writer, scheme *colorScheme) error {
	if _, err := scheme.label.Fprintln(w, s.label); err != nil {
		return fmt.Errorf("could not write label: err = %w", err)
	}
	for _, e := range s.entries {
		if err := writeTagResult(w, scheme, e.tag, e.result); err != nil {
			return err
		}
	}
	return nil
}
