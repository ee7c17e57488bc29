package benchman

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Observer is notified of every sample after it has been recorded. Observers
// are called outside of the result set lock and must be safe for concurrent
// use.
type Observer interface {
	Observe(tag string, d time.Duration)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(tag string, d time.Duration)

func (f ObserverFunc) Observe(tag string, d time.Duration) { f(tag, d) }

type Options struct {
	// Clock is read when stopwatches start and stop. Defaults to real time.
	Clock     Clock
	Observers []Observer
}

// BenchMan collects the results from stopwatches. Copies made with Clone
// share the same results, so a BenchMan can be handed to many goroutines.
type BenchMan struct {
	label     string
	clock     Clock
	observers []Observer
	results   *resultSet
}

// New creates a BenchMan measuring with real time.
func New(label string) *BenchMan {
	return NewWithOptions(label, &Options{})
}

func NewWithOptions(label string, options *Options) *BenchMan {
	bm := &BenchMan{
		label:   label,
		clock:   realtimeClock{},
		results: newResultSet(),
	}
	if options == nil {
		return bm
	}

	if options.Clock != nil {
		bm.clock = options.Clock
	}
	bm.observers = make([]Observer, len(options.Observers))
	copy(bm.observers, options.Observers)
	return bm
}

// Clone returns a new handle sharing the label and results of bm.
func (bm *BenchMan) Clone() *BenchMan {
	clone := *bm
	return &clone
}

func (bm *BenchMan) Label() string {
	return bm.label
}

// Stopwatch reserves tag in the report and starts a stopwatch for it. The tag
// is reserved before the stopwatch starts, so the report order reflects when
// each tag was first requested rather than when it first completed.
func (bm *BenchMan) Stopwatch(tag string) *Stopwatch {
	bm.results.reserveTag(tag)
	return newStopwatch(bm, tag)
}

// Time measures fn under a stopwatch for tag. The sample is recorded even if
// fn panics.
func (bm *BenchMan) Time(tag string, fn func()) {
	sw := bm.Stopwatch(tag)
	defer sw.Stop()
	fn()
}

// Tags returns every reserved tag in reservation order, including tags which
// have not yet recorded a sample.
func (bm *BenchMan) Tags() []string {
	return bm.results.tags()
}

// Len returns the number of samples recorded for tag.
func (bm *BenchMan) Len(tag string) int {
	return bm.results.n(tag)
}

// Summary returns the statistics of tag, or false if tag has no samples.
func (bm *BenchMan) Summary(tag string) (Summary, bool) {
	entries := bm.results.snapshot([]string{tag})
	if len(entries) == 0 {
		return Summary{}, false
	}
	return entries[0].result.summary(), true
}

// TagSummary pairs a tag with its statistics.
type TagSummary struct {
	Tag string
	Summary
}

// Summaries returns the statistics of every tag with samples in reservation
// order.
func (bm *BenchMan) Summaries() []TagSummary {
	entries := bm.results.snapshotAll()
	summaries := make([]TagSummary, len(entries))
	for i, e := range entries {
		summaries[i] = TagSummary{Tag: e.tag, Summary: e.result.summary()}
	}
	return summaries
}

// Slice takes an immutable snapshot of the requested tags. Tags without any
// samples are silently left out.
func (bm *BenchMan) Slice(tags ...string) *Slice {
	return newSlice(bm.label, bm.results.snapshot(tags))
}

func (bm *BenchMan) record(tag string, d time.Duration) {
	bm.results.addResult(tag, d)
	for _, o := range bm.observers {
		o.Observe(tag, d)
	}
}

// Print writes the report to w, coloring the headers if w is a terminal.
func (bm *BenchMan) Print(w io.Writer) error {
	return bm.render(w, colorSchemeFor(w))
}

func (bm *BenchMan) String() string {
	var b strings.Builder
	// Writes to a strings.Builder never fail.
	_ = bm.render(&b, plainColorScheme())
	return b.String()
}

func (bm *BenchMan) render(w io.Writer, scheme *colorScheme) error {
	if _, err := scheme.label.Fprintln(w, bm.label); err != nil {
		return fmt.Errorf("could not write label: err = %w", err)
	}
	return bm.results.renderAll(w, scheme)
}
