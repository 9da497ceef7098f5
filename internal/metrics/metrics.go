package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"blockworld/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "blockworld"

// Metrics groups the Prometheus collectors for streaming, meshing and edits.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	columnsGenerated prometheus.Counter
	columnsRestored  prometheus.Counter
	columnsEvicted   prometheus.Counter
	cacheDropped     prometheus.Counter
	meshRebuilds     *prometheus.CounterVec
	edits            *prometheus.CounterVec
	editsDropped     prometheus.Counter
	loadedColumns    prometheus.Gauge
	cachedColumns    prometheus.Gauge
	rebuildQueue     prometheus.Gauge
	frameSeconds     prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg skips registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		columnsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "columns_generated_total",
			Help:      "Chunk columns produced by terrain generation.",
		}),
		columnsRestored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "columns_restored_total",
			Help:      "Chunk columns reloaded from the eviction cache.",
		}),
		columnsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "columns_evicted_total",
			Help:      "Chunk columns moved from the loaded set into the eviction cache.",
		}),
		cacheDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "columns_cache_dropped_total",
			Help:      "Cached chunk columns discarded by the cache bound.",
		}),
		meshRebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_mesh_rebuilds_total",
			Help:      "Chunk mesh rebuilds by pass.",
		}, []string{"pass"}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_edits_total",
			Help:      "Applied block edits by operation.",
		}, []string{"op"}),
		editsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_edits_dropped_total",
			Help:      "Block edits ignored because the target was not loaded.",
		}),
		loadedColumns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "columns_loaded",
			Help:      "Chunk columns currently loaded.",
		}),
		cachedColumns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "columns_cached",
			Help:      "Chunk columns held in the eviction cache.",
		}),
		rebuildQueue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunk_rebuild_queue_depth",
			Help:      "Chunks waiting for a mesh rebuild.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_update_seconds",
			Help:      "Time spent in the per-frame update phase.",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066},
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.columnsGenerated, m.columnsRestored, m.columnsEvicted, m.cacheDropped,
			m.meshRebuilds, m.edits, m.editsDropped,
			m.loadedColumns, m.cachedColumns, m.rebuildQueue, m.frameSeconds,
		)
	}
	return m
}

func (m *Metrics) ColumnGenerated() {
	if m != nil {
		m.columnsGenerated.Inc()
	}
}

func (m *Metrics) ColumnRestored() {
	if m != nil {
		m.columnsRestored.Inc()
	}
}

func (m *Metrics) ColumnEvicted() {
	if m != nil {
		m.columnsEvicted.Inc()
	}
}

func (m *Metrics) CacheDropped() {
	if m != nil {
		m.cacheDropped.Inc()
	}
}

// MeshRebuilt counts one rebuilt mesh of the named pass.
func (m *Metrics) MeshRebuilt(pass string) {
	if m != nil {
		m.meshRebuilds.WithLabelValues(pass).Inc()
	}
}

// Edit counts an applied edit; op is "set" or "delete".
func (m *Metrics) Edit(op string) {
	if m != nil {
		m.edits.WithLabelValues(op).Inc()
	}
}

func (m *Metrics) EditDropped() {
	if m != nil {
		m.editsDropped.Inc()
	}
}

// SetColumns records the loaded and cached column counts.
func (m *Metrics) SetColumns(loaded, cached int) {
	if m != nil {
		m.loadedColumns.Set(float64(loaded))
		m.cachedColumns.Set(float64(cached))
	}
}

func (m *Metrics) SetRebuildQueue(n int) {
	if m != nil {
		m.rebuildQueue.Set(float64(n))
	}
}

// ObserveFrame records how long one update phase took.
func (m *Metrics) ObserveFrame(d time.Duration) {
	if m != nil {
		m.frameSeconds.Observe(d.Seconds())
	}
}

// Server exposes a gatherer on /metrics.
type Server struct {
	srv *http.Server
	log *logging.Logger
}

// StartHTTP serves /metrics on addr in a background goroutine.
func StartHTTP(addr string, g prometheus.Gatherer, log *logging.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	s := &Server{
		srv: &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		log: log,
	}
	go func() {
		log.Infof("metrics available at http://%s/metrics", addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server: %v", err)
		}
	}()
	return s
}

// Close stops the HTTP server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
