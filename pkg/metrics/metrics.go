package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "followsnap"

// Recorder receives collector events. The collector only depends on this
// interface so a run without metrics uses Nop.
type Recorder interface {
	PageFetched(users int)
	PageFailed(kind string)
	CycleFinished(outcome string, unique, added int)
	MasterSize(total, target int)
	CheckpointWritten(ok bool)
}

// Metrics is the Prometheus-backed Recorder
type Metrics struct {
	registry *prometheus.Registry

	pages          prometheus.Counter
	users          prometheus.Counter
	pageFailures   *prometheus.CounterVec
	cycles         *prometheus.CounterVec
	cycleAdded     prometheus.Histogram
	masterSize     prometheus.Gauge
	targetSize     prometheus.Gauge
	checkpoints    *prometheus.CounterVec
	lastCheckpoint prometheus.Gauge
}

// New creates the run metrics on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Follower pages fetched successfully.",
		}),
		users: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_users_total",
			Help:      "Usernames received across all pages, duplicates included.",
		}),
		pageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_failures_total",
			Help:      "Page fetches that aborted a cycle, by failure kind.",
		}, []string{"kind"}),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Pagination cycles finished, by outcome.",
		}, []string{"outcome"}),
		cycleAdded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_new_identifiers",
			Help:      "Identifiers a cycle added to the master set.",
			Buckets:   []float64{0, 1, 5, 25, 100, 500, 2500},
		}),
		masterSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "master_set_size",
			Help:      "Unique identifiers accumulated so far.",
		}),
		targetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "target_size",
			Help:      "Configured target size of the run.",
		}),
		checkpoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkpoint_writes_total",
			Help:      "Checkpoint writes, by result.",
		}, []string{"result"}),
		lastCheckpoint: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_checkpoint_timestamp_seconds",
			Help:      "Unix time of the last successful checkpoint write.",
		}),
	}

	m.registry.MustRegister(
		m.pages, m.users, m.pageFailures, m.cycles, m.cycleAdded,
		m.masterSize, m.targetSize, m.checkpoints, m.lastCheckpoint,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// PageFetched counts a decoded page and the users it carried
func (m *Metrics) PageFetched(users int) {
	m.pages.Inc()
	m.users.Add(float64(users))
}

// PageFailed counts a page that aborted its cycle, labelled by error kind
func (m *Metrics) PageFailed(kind string) {
	m.pageFailures.WithLabelValues(kind).Inc()
}

// CycleFinished counts a cycle by outcome and observes how many identifiers it added
func (m *Metrics) CycleFinished(outcome string, unique, added int) {
	m.cycles.WithLabelValues(outcome).Inc()
	m.cycleAdded.Observe(float64(added))
}

// MasterSize records the master set size against the target
func (m *Metrics) MasterSize(total, target int) {
	m.masterSize.Set(float64(total))
	m.targetSize.Set(float64(target))
}

// CheckpointWritten counts a checkpoint attempt; successes also stamp the last checkpoint time
func (m *Metrics) CheckpointWritten(ok bool) {
	if ok {
		m.checkpoints.WithLabelValues("ok").Inc()
		m.lastCheckpoint.SetToCurrentTime()
		return
	}
	m.checkpoints.WithLabelValues("error").Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done. The listener is bound
// before returning so a bad address is reported synchronously.
func (m *Metrics) Serve(ctx context.Context, addr string) (net.Addr, <-chan error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	return ln.Addr(), done, nil
}

// Nop is a Recorder that discards every event
type Nop struct{}

// PageFetched discards the event
func (Nop) PageFetched(int) {}

// PageFailed discards the event
func (Nop) PageFailed(string) {}

// CycleFinished discards the event
func (Nop) CycleFinished(string, int, int) {}

// MasterSize discards the event
func (Nop) MasterSize(int, int) {}

// CheckpointWritten discards the event
func (Nop) CheckpointWritten(bool) {}
