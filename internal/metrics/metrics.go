package metrics

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "opencraft"

// Metrics instruments the simulation. It satisfies physics.Observer and
// kinematics.TickObserver.
type Metrics struct {
	tickDuration  prometheus.Histogram
	resolvePasses prometheus.Histogram
	resolveCapped prometheus.Counter
	meshVertices  prometheus.Counter
	chunks        prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent running the systems of one tick.",
			Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
		resolvePasses: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "collision_resolve_passes",
			Help:      "Slide passes needed per collision resolve.",
			Buckets:   prometheus.LinearBuckets(1, 1, 16),
		}),
		resolveCapped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collision_resolve_capped_total",
			Help:      "Collision resolves stopped by the pass limit.",
		}),
		meshVertices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mesh_vertices_total",
			Help:      "Vertices emitted by chunk meshing.",
		}),
		chunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "world_chunks",
			Help:      "Chunks registered in the world.",
		}),
	}
	reg.MustRegister(m.tickDuration, m.resolvePasses, m.resolveCapped, m.meshVertices, m.chunks)
	return m
}

func (m *Metrics) ObserveTick(d time.Duration) {
	m.tickDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveResolve(passes int, capped bool) {
	m.resolvePasses.Observe(float64(passes))
	if capped {
		m.resolveCapped.Inc()
	}
}

func (m *Metrics) ObserveMesh(vertices int) {
	m.meshVertices.Add(float64(vertices))
}

func (m *Metrics) SetChunks(n int) {
	m.chunks.Set(float64(n))
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
