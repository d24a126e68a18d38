package exporter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newScrapeHandler serves promRegistry. With internal metrics enabled the
// handler also counts its own requests.
func newScrapeHandler(promRegistry *prometheus.Registry, internal bool) http.Handler {
	h := promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	})
	if !internal {
		return h
	}

	slog.Info("enabled prometheus internal metrics",
		"metrics", []string{"promhttp_metric_handler_requests_total", "go_*", "process_*"})
	return promhttp.InstrumentMetricHandler(promRegistry, h)
}

// scrapeLogger logs every scrape with the number of stored series and the
// time spent rendering them.
func scrapeLogger(next http.Handler, s *store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("prometheus scrape",
			"remote", r.RemoteAddr,
			"series", s.len(),
			"duration", time.Since(start))
	})
}

// createHTTPServer serves the store's registry on path.
func createHTTPServer(addr, path string, promRegistry *prometheus.Registry, s *store, internal bool) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(path, scrapeLogger(newScrapeHandler(promRegistry, internal), s))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
