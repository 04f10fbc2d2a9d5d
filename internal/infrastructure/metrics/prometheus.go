package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ArticleRecommender/internal/domain"
	"ArticleRecommender/internal/ports"
)

// Recorder exposes engine outcomes as Prometheus metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	results  prometheus.Histogram
	duration *prometheus.HistogramVec
	clicks   *prometheus.CounterVec
}

var _ ports.Metrics = (*Recorder)(nil)

// NewRecorder registers the recommender collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recommender_requests_total",
				Help: "Recommendation requests served, by answering stage",
			},
			[]string{"stage"},
		),
		results: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recommender_results",
				Help:    "Number of articles returned per request",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recommender_duration_seconds",
				Help:    "Time spent building a recommendation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		clicks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recommender_clicks_total",
				Help: "Click recordings, by whether a new interaction row was written",
			},
			[]string{"inserted"},
		),
	}

	r.registry.MustRegister(r.requests, r.results, r.duration, r.clicks)
	return r
}

// ObserveRecommendation counts a served request.
func (r *Recorder) ObserveRecommendation(stage domain.Stage, count int, elapsed time.Duration) {
	r.requests.WithLabelValues(string(stage)).Inc()
	r.results.Observe(float64(count))
	r.duration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
}

// ObserveClick counts a click recording.
func (r *Recorder) ObserveClick(inserted bool) {
	r.clicks.WithLabelValues(strconv.FormatBool(inserted)).Inc()
}

// Gatherer returns the registry backing the recorder.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
