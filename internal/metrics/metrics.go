// Package metrics provides Prometheus metrics for the standings service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leaguedesk"

// Recalculation results.
const (
	ResultSuccess       = "success"
	ResultInputError    = "input_error"
	ResultPersistError  = "persist_error"
	ResultInvalidLeague = "invalid_league"
)

// Recorder owns all collectors. A nil *Recorder is valid and records nothing,
// which keeps tests and tools free of registry setup.
type Recorder struct {
	registry *prometheus.Registry

	recalculations      *prometheus.CounterVec
	recalculationTime   prometheus.Histogram
	gamesEvaluated      prometheus.Counter
	gamesCounted        prometheus.Counter
	gamesSkipped        *prometheus.CounterVec
	persistFailures     *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates a recorder backed by its own registry, including Go runtime
// and process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		recalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "standings",
			Name:      "recalculations_total",
			Help:      "Standings recalculations by result.",
		}, []string{"result"}),
		recalculationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "standings",
			Name:      "recalculation_duration_seconds",
			Help:      "Wall time of a standings recalculation including reads and writes.",
			Buckets:   prometheus.DefBuckets,
		}),
		gamesEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "standings",
			Name:      "games_evaluated_total",
			Help:      "Games passed through status resolution.",
		}),
		gamesCounted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "standings",
			Name:      "games_counted_total",
			Help:      "Games that contributed to standings.",
		}),
		gamesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "standings",
			Name:      "games_skipped_total",
			Help:      "Decided games left out of standings, by reason.",
		}, []string{"reason"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "standings",
			Name:      "persist_failures_total",
			Help:      "Failed standings key writes, by key role.",
		}, []string{"key"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.recalculations,
		r.recalculationTime,
		r.gamesEvaluated,
		r.gamesCounted,
		r.gamesSkipped,
		r.persistFailures,
		r.httpRequests,
		r.httpRequestDuration,
	)
	return r
}

// Registry exposes the underlying registry for gathering in tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveRecalculation records one recalculation outcome.
func (r *Recorder) ObserveRecalculation(result string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.recalculations.WithLabelValues(result).Inc()
	r.recalculationTime.Observe(elapsed.Seconds())
}

// ObserveGames records how many games were resolved and how many counted.
func (r *Recorder) ObserveGames(evaluated, counted int) {
	if r == nil {
		return
	}
	r.gamesEvaluated.Add(float64(evaluated))
	r.gamesCounted.Add(float64(counted))
}

// GameSkipped records one skipped game.
func (r *Recorder) GameSkipped(reason string) {
	if r == nil {
		return
	}
	r.gamesSkipped.WithLabelValues(reason).Inc()
}

// PersistFailed records a failed write of the primary or backup key.
func (r *Recorder) PersistFailed(role string) {
	if r == nil {
		return
	}
	r.persistFailures.WithLabelValues(role).Inc()
}

// ObserveHTTPRequest records one served request.
func (r *Recorder) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
