// Package metrics keeps booking counters in an in-memory sink that can be
// dumped over HTTP.
package metrics

import (
	"encoding/json"
	"net/http"
	"time"

	gometrics "github.com/armon/go-metrics"
)

type Metrics struct {
	*gometrics.Metrics
	sink *gometrics.InmemSink
}

func New(service string) (*Metrics, error) {
	sink := gometrics.NewInmemSink(10*time.Second, time.Minute)

	cfg := gometrics.DefaultConfig(service)
	cfg.EnableHostname = false
	cfg.EnableRuntimeMetrics = false

	m, err := gometrics.New(cfg, sink)
	if err != nil {
		return nil, err
	}

	return &Metrics{Metrics: m, sink: sink}, nil
}

func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := m.sink.DisplayMetrics(w, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(summary)
	}
}
