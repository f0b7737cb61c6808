// Package httpapi exposes the lifecycle orchestrator over HTTP.
package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bnema/agentctl/internal/application"
	"github.com/bnema/agentctl/internal/domain"
	"github.com/bnema/agentctl/internal/ports"
	"github.com/bnema/agentctl/internal/store"
)

// Lifecycle is the orchestrator surface served over HTTP.
type Lifecycle interface {
	Overview() application.Overview
	Verdict(action domain.Action, target domain.ProgramID) (domain.Verdict, error)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Migrate(ctx context.Context, program domain.ProgramID) error
	Withdraw(ctx context.Context, to common.Address) error
	Subscribe(kind store.Kind, fn store.Listener) func()
}

var _ Lifecycle = (*application.Lifecycle)(nil)

type Deps struct {
	Lifecycle Lifecycle
	Gatherer  prometheus.Gatherer
	Clock     ports.Clock
	Logger    zerolog.Logger
	// AccessLog receives httplog request lines. Defaults to stderr.
	AccessLog io.Writer
	// PingInterval spaces keep-alive events on /api/events.
	PingInterval time.Duration
}

type handlers struct {
	lifecycle    Lifecycle
	clock        ports.Clock
	logger       zerolog.Logger
	pingInterval time.Duration
}

func NewRouter(deps Deps) *chi.Mux {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if deps.AccessLog == nil {
		deps.AccessLog = os.Stderr
	}
	if deps.PingInterval <= 0 {
		deps.PingInterval = 15 * time.Second
	}

	h := &handlers{
		lifecycle:    deps.Lifecycle,
		clock:        deps.Clock,
		logger:       deps.Logger,
		pingInterval: deps.PingInterval,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(requestLogger(deps.AccessLog))
		r.Get("/status", h.status)
		r.Get("/eligibility", h.eligibility)
		r.Get("/events", h.events)
		r.Post("/start", h.start)
		r.Post("/stop", h.stop)
		r.Post("/migrate/{program}", h.migrate)
		r.Post("/withdraw", h.withdraw)
	})

	return r
}

func requestLogger(w io.Writer) func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{})),
		&httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				route := req.URL.Path
				if rc := chi.RouteContext(req.Context()); rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("method", req.Method),
					slog.String("route", route),
				}
			},
		},
	)
}
