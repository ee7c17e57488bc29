package benchman

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderAllToString(t *testing.T, s *resultSet) string {
	var b strings.Builder
	require.NoError(t, s.renderAll(&b, plainColorScheme()))
	return b.String()
}

func TestResultSet_ReserveTag_IsIdempotent(t *testing.T) {
	s := newResultSet()
	s.reserveTag("a")
	s.reserveTag("b")
	s.reserveTag("a")
	assert.Equal(t, []string{"a", "b"}, s.tags())
}

func TestResultSet_ReserveTag_DoesNotCreateResults(t *testing.T) {
	s := newResultSet()
	s.reserveTag("a")
	assert.Equal(t, 0, s.n("a"))
	assert.Empty(t, s.snapshot([]string{"a"}))
	assert.Equal(t, "", renderAllToString(t, s))
}

func TestResultSet_RenderAll_UsesReservationOrder(t *testing.T) {
	s := newResultSet()
	s.reserveTag("first")
	s.reserveTag("second")
	s.reserveTag("never")

	s.addResult("second", time.Millisecond)
	s.addResult("first", 2*time.Millisecond)

	want := "first (1 samples)\n" +
		"[ave.] 2ms\n" +
		"2ms (>50%), 2ms (>95%), 2ms (>99%)\n" +
		"second (1 samples)\n" +
		"[ave.] 1ms\n" +
		"1ms (>50%), 1ms (>95%), 1ms (>99%)\n"
	assert.Equal(t, want, renderAllToString(t, s))
}

func TestResultSet_Snapshot(t *testing.T) {
	s := newResultSet()
	s.reserveTag("a")
	s.reserveTag("b")
	s.addResult("a", time.Millisecond)
	s.addResult("b", time.Millisecond)
	s.addResult("b", time.Millisecond)

	entries := s.snapshot([]string{"b", "missing", "a", "b"})
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].tag)
	assert.Equal(t, 2, entries[0].result.n())
	assert.Equal(t, "a", entries[1].tag)

	// Later samples must not leak into the copies.
	s.addResult("a", time.Millisecond)
	assert.Equal(t, 1, entries[1].result.n())
	assert.Equal(t, 2, s.n("a"))
}

func TestResultSet_PanicDuringWritePoisons(t *testing.T) {
	s := newResultSet()
	s.reserveTag("a")

	assert.Panics(t, func() {
		s.write(func() { panic("writer failed mid-mutation") })
	})

	assert.PanicsWithError(t, ErrPoisoned.Error(), func() { s.reserveTag("b") })
	assert.PanicsWithError(t, ErrPoisoned.Error(), func() { s.addResult("a", time.Millisecond) })
	assert.PanicsWithError(t, ErrPoisoned.Error(), func() { s.tags() })
	assert.PanicsWithError(t, ErrPoisoned.Error(), func() { s.snapshot([]string{"a"}) })
}
