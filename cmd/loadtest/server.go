package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codewandler/evict-go/core/cache"
)

type stats struct {
	Entries  int `json:"entries"`
	Capacity int `json:"capacity"`
}

func newRouter(reg *prometheus.Registry, c *cache.Evicting) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stats{Entries: c.Len(), Capacity: c.Capacity()})
	}).Methods(http.MethodGet)
	return r
}

func newStatsServer(addr string, reg *prometheus.Registry, c *cache.Evicting, log *slog.Logger) *http.Server {
	srv := &http.Server{Addr: addr, Handler: newRouter(reg, c)}
	go func() {
		log.Info("metrics server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", slog.Any("error", err))
		}
	}()
	return srv
}
