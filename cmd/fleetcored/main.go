// Command fleetcored serves the fleet reservation engine over HTTP: the
// resource/reservation/service-task API, derived KPI and calendar queries,
// and prometheus metrics. Storage backend and listen address come from the
// environment.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fleetcore/internal/adapters/api"
	"fleetcore/internal/observability"
	"fleetcore/internal/service"
	"fleetcore/internal/storage"
	"fleetcore/internal/store"
)

func main() {
	ctx := context.Background()

	medium, err := storage.OpenFromEnv(ctx)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer func() { _ = medium.Close() }()

	st, err := store.Open(ctx, medium)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	svc := service.New(st)

	registry := prometheus.NewRegistry()
	registry.MustRegister(observability.NewFleetCollector(svc))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/", api.NewHandler(svc))

	addr := os.Getenv("FLEETCORE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("fleetcored listening on %s (storage driver %s)", addr, medium.Driver())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
