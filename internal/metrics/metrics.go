package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tleparse_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tleparse_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	recordsParsedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tleparse_records_parsed_total",
			Help: "Total number of TLE sets decoded successfully.",
		},
	)

	recordsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tleparse_records_rejected_total",
			Help: "Total number of TLE sets rejected as Invalid TLE Format.",
		},
	)

	fetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tleparse_fetch_total",
			Help: "Catalog refresh attempts by result (ok, error, empty).",
		},
		[]string{"result"},
	)

	catalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tleparse_catalog_size",
			Help: "Number of records in the current catalog.",
		},
	)

	catalogAgeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tleparse_catalog_age_seconds",
			Help: "Seconds since the current catalog was fetched.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpDurationSeconds,
		recordsParsedTotal,
		recordsRejectedTotal,
		fetchTotal,
		catalogSize,
		catalogAgeSeconds,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRecords adds to the parsed and rejected record counters.
func RecordRecords(parsed, rejected int) {
	recordsParsedTotal.Add(float64(parsed))
	recordsRejectedTotal.Add(float64(rejected))
}

// RecordFetch counts one catalog refresh attempt.
func RecordFetch(result string) {
	fetchTotal.WithLabelValues(result).Inc()
}

// SetCatalogSize sets the current catalog record count.
func SetCatalogSize(n int) {
	catalogSize.Set(float64(n))
}

// SetCatalogAge sets the current catalog age in seconds.
func SetCatalogAge(seconds float64) {
	catalogAgeSeconds.Set(seconds)
}

var exactRoutes = map[string]bool{
	"/":                         true,
	"/healthz":                  true,
	"/readyz":                   true,
	"/metrics":                  true,
	"/api/v1/tle/parse":         true,
	"/api/v1/tle/parse/catalog": true,
	"/api/v1/tle/metadata":      true,
	"/api/v1/tle/fetch":         true,
	"/api/v1/tle/export.xlsx":   true,
}

const recordPrefix = "/api/v1/tle/"

// normalizeRoute maps a request path to a bounded set of label values so that
// per-satellite lookups and scanner noise cannot inflate label cardinality.
func normalizeRoute(path string) string {
	if exactRoutes[path] {
		return path
	}
	if id, ok := strings.CutPrefix(path, recordPrefix); ok && id != "" {
		if _, err := strconv.ParseUint(id, 10, 32); err == nil {
			return recordPrefix + "{satellite_number}"
		}
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := normalizeRoute(r.URL.Path)
		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rw.statusCode)).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
