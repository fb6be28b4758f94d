package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/config"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/endpoints"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/metrics"
	httptransport "github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/transport/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
	gatherer prometheus.Gatherer,
	m *metrics.Metrics,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	router.Route("/api/v1", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			httptransport.Instrument(m),
			middleware.Timeout(cfg.HTTP.Timeout),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Get("/fares/cheapest", httptransport.MakeHandlerFunc(
			endpts.FareEndpoint.CheapestFares,
			decodeFareReportRequest,
			httptransport.ResponseWithBody,
		))

		router.Post("/sweeps", httptransport.MakeHandlerFunc(
			endpts.SweepEndpoint.StartSweep,
			httptransport.DecodeEmpty,
			httptransport.AcceptedResponse,
		))
	})

	return router
}
