package responsetimecollector

import (
	"sync"
	"time"
)

// Tagged keeps one collector per tag, creating each collector on the first
// duration observed for its tag. It satisfies benchman.Observer, so it can be
// attached to a BenchMan to follow its samples as they are recorded.
type Tagged struct {
	newCollector  func() Collector
	collectors    map[string]Collector
	tagIndices    []string
	collectorsMux *sync.RWMutex
}

func NewTagged(newCollector func() Collector) *Tagged {
	return &Tagged{
		newCollector:  newCollector,
		collectors:    map[string]Collector{},
		tagIndices:    []string{},
		collectorsMux: &sync.RWMutex{},
	}
}

func (t *Tagged) Observe(tag string, d time.Duration) {
	t.collector(tag).Add(d)
}

func (t *Tagged) collector(tag string) Collector {
	t.collectorsMux.RLock()
	c, ok := t.collectors[tag]
	t.collectorsMux.RUnlock()
	if ok {
		return c
	}

	t.collectorsMux.Lock()
	defer t.collectorsMux.Unlock()
	// Another goroutine may have created the collector while the lock was
	// released.
	if c, ok := t.collectors[tag]; ok {
		return c
	}
	c = t.newCollector()
	t.collectors[tag] = c
	t.tagIndices = append(t.tagIndices, tag)
	return c
}

// Tags returns the observed tags in the order they were first observed.
func (t *Tagged) Tags() []string {
	t.collectorsMux.RLock()
	defer t.collectorsMux.RUnlock()
	tags := make([]string, len(t.tagIndices))
	copy(tags, t.tagIndices)
	return tags
}

// Aggregate returns the aggregation of tag, or false if tag was never observed.
func (t *Tagged) Aggregate(tag string) (*Aggregation, bool) {
	t.collectorsMux.RLock()
	c, ok := t.collectors[tag]
	t.collectorsMux.RUnlock()
	if !ok {
		return nil, false
	}
	return c.Aggregate(), true
}

// Reset resets every collector while keeping the observed tags.
func (t *Tagged) Reset() {
	t.collectorsMux.RLock()
	defer t.collectorsMux.RUnlock()
	for _, c := range t.collectors {
		c.Reset()
	}
}
