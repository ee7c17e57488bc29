package serving

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/kcz17/benchman/benchman"
	"github.com/kcz17/benchman/responsetimecollector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type steppingClock struct {
	t    time.Time
	step time.Duration
}

// Now advances the clock by step on every call so each stopwatch measures
// exactly one step.
func (c *steppingClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newTestServer() *APIServer {
	collectors := responsetimecollector.NewTagged(func() responsetimecollector.Collector {
		return responsetimecollector.NewArrayCollector()
	})
	bm := benchman.NewWithOptions("api", &benchman.Options{
		Clock:     &steppingClock{step: time.Millisecond},
		Observers: []benchman.Observer{collectors},
	})
	bm.Stopwatch("a").Stop()
	bm.Stopwatch("b").Stop()
	bm.Stopwatch("b").Stop()

	return &APIServer{BenchMan: bm, Collectors: collectors}
}

func get(a *APIServer, uri string) *fasthttp.Response {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI(uri)
	a.Router().HandleRequest(ctx)
	return &ctx.Response
}

func TestAPIServer_Report(t *testing.T) {
	a := newTestServer()
	resp := get(a, "/report")
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, a.BenchMan.String(), string(resp.Body()))
}

func TestAPIServer_Slice(t *testing.T) {
	a := newTestServer()
	resp := get(a, "/slice?tag=b&tag=missing")
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, a.BenchMan.Slice("b").String(), string(resp.Body()))

	resp = get(a, "/slice")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
}

func TestAPIServer_Summary(t *testing.T) {
	resp := get(newTestServer(), "/summary")
	require.Equal(t, http.StatusOK, resp.StatusCode())

	var summaries []tagSummary
	require.NoError(t, json.Unmarshal(resp.Body(), &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "a", summaries[0].Tag)
	assert.Equal(t, "b", summaries[1].Tag)
	assert.Equal(t, 2, summaries[1].Count)
	assert.Equal(t, 0.001, summaries[1].Mean)
}

func TestAPIServer_Collector(t *testing.T) {
	a := newTestServer()
	resp := get(a, "/collector?tag=b")
	require.Equal(t, http.StatusOK, resp.StatusCode())

	var aggregation struct{ P50, P75, P95 float64 }
	require.NoError(t, json.Unmarshal(resp.Body(), &aggregation))
	assert.Equal(t, 0.001, aggregation.P95)

	resp = get(a, "/collector?tag=missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	a.Collectors = nil
	resp = get(a, "/collector?tag=b")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}
