package serving

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	routing "github.com/jackwhelpton/fasthttp-routing/v2"
	"github.com/kcz17/benchman/benchman"
	"github.com/kcz17/benchman/responsetimecollector"
	"github.com/valyala/fasthttp"
)

// APIServer exposes the live results of a BenchMan while it is measuring.
type APIServer struct {
	BenchMan *benchman.BenchMan
	// Collectors is optional; /collector responds 404 without it.
	Collectors *responsetimecollector.Tagged
}

func (a *APIServer) Router() *routing.Router {
	router := routing.New()

	router.Get("/report", a.reportHandler())
	router.Get("/slice", a.sliceHandler())
	router.Get("/summary", a.summaryHandler())
	router.Get("/collector", a.collectorHandler())

	return router
}

func (a *APIServer) ListenAndServe(addr string) error {
	return fasthttp.ListenAndServe(addr, a.Router().HandleRequest)
}

func (a *APIServer) reportHandler() routing.Handler {
	return func(c *routing.Context) error {
		return c.Write(a.BenchMan.String())
	}
}

func (a *APIServer) sliceHandler() routing.Handler {
	return func(c *routing.Context) error {
		var tags []string
		for _, tag := range c.QueryArgs().PeekMulti("tag") {
			tags = append(tags, string(tag))
		}
		if len(tags) == 0 {
			c.SetStatusCode(http.StatusBadRequest)
			return c.Write("expected at least one tag query parameter\n")
		}

		return c.Write(a.BenchMan.Slice(tags...).String())
	}
}

type tagSummary struct {
	Tag    string  `json:"tag"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdDev"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
	P99    float64 `json:"p99"`
}

func (a *APIServer) summaryHandler() routing.Handler {
	return func(c *routing.Context) error {
		summaries := a.BenchMan.Summaries()
		response := make([]tagSummary, len(summaries))
		for i, s := range summaries {
			response[i] = tagSummary{
				Tag:    s.Tag,
				Count:  s.Count,
				Mean:   s.Mean.Seconds(),
				Min:    s.Min.Seconds(),
				Max:    s.Max.Seconds(),
				StdDev: s.StdDev.Seconds(),
				P50:    s.P50.Seconds(),
				P95:    s.P95.Seconds(),
				P99:    s.P99.Seconds(),
			}
		}

		return writeJSON(c, response)
	}
}

func (a *APIServer) collectorHandler() routing.Handler {
	return func(c *routing.Context) error {
		tag := string(c.QueryArgs().Peek("tag"))
		if a.Collectors == nil {
			c.SetStatusCode(http.StatusNotFound)
			return c.Write("no collectors attached\n")
		}

		aggregation, ok := a.Collectors.Aggregate(tag)
		if !ok {
			c.SetStatusCode(http.StatusNotFound)
			return c.Write(fmt.Sprintf("no samples observed for tag %q\n", tag))
		}
		response := &struct {
			P50 float64
			P75 float64
			P95 float64
		}{
			P50: float64(aggregation.P50) / float64(time.Second),
			P75: float64(aggregation.P75) / float64(time.Second),
			P95: float64(aggregation.P95) / float64(time.Second),
		}

		return writeJSON(c, response)
	}
}

func writeJSON(c *routing.Context, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not marshal response: err = %w", err)
	}
	c.SetContentType("application/json")
	return c.Write(b)
}
