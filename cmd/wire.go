package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/agentctl/internal/adapters/middleware"
	statusadapter "github.com/bnema/agentctl/internal/adapters/render/status"
	tomlrepo "github.com/bnema/agentctl/internal/adapters/repo/toml"
	"github.com/bnema/agentctl/internal/application"
	"github.com/bnema/agentctl/internal/config"
	"github.com/bnema/agentctl/internal/logging"
	"github.com/bnema/agentctl/internal/metrics"
	"github.com/bnema/agentctl/internal/polling"
	"github.com/bnema/agentctl/internal/ports"
	"github.com/bnema/agentctl/internal/store"
)

type app struct {
	cfg            config.Config
	logger         zerolog.Logger
	logCloser      io.Closer
	registry       *prometheus.Registry
	stores         *store.Stores
	coordinator    *polling.Coordinator
	lifecycle      *application.Lifecycle
	instances      *application.InstanceService
	statusRenderer func(application.Overview, statusadapter.RenderOptions) (string, error)
	clock          ports.Clock
}

func wireApp() (*app, error) {
	logCfg, err := logging.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger, logCloser, err := logging.Init(logCfg, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	v := viper.New()
	cfg, err := config.Load(v, os.Getenv("AGENTCTL_CONFIG"))
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("load config: %w", err)
	}

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("wire instance repository: %w", err)
	}

	client := &middleware.Client{
		BaseURL:        cfg.MiddlewareURL,
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.MiddlewareTimeout,
	}

	clock := ports.SystemClock{}
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	stores := store.New(m)

	coordinator := polling.New(clock, logger.With().Str("component", "polling").Logger(), m)
	sources := application.NewSources(client, client, client, client, repo, cfg.StakingPrograms)
	polling.Register(coordinator, stores.Deployment, cfg.DeploymentInterval, sources.Deployment)
	polling.Register(coordinator, stores.Balances, cfg.BalancesInterval, sources.Balances)
	polling.Register(coordinator, stores.Staking, cfg.StakingInterval, sources.Staking)

	lifecycle := application.NewLifecycle(application.LifecycleDeps{
		Wallets:            client,
		Deployments:        client,
		Instances:          repo,
		Stores:             stores,
		Polling:            coordinator,
		Clock:              clock,
		Logger:             logger.With().Str("component", "lifecycle").Logger(),
		Metrics:            m,
		ConfirmDelay:       cfg.ConfirmDelay,
		LowNativeThreshold: cfg.LowNativeThreshold,
	})

	return &app{
		cfg:            cfg,
		logger:         logger,
		logCloser:      logCloser,
		registry:       registry,
		stores:         stores,
		coordinator:    coordinator,
		lifecycle:      lifecycle,
		instances:      application.NewInstanceService(repo, clock, lifecycle),
		statusRenderer: statusadapter.Render,
		clock:          clock,
	}, nil
}

// refresh loads the instance and runs one tick of every poll loop so
// one-shot commands see current data.
func (a *app) refresh(ctx context.Context) error {
	if err := a.lifecycle.LoadInstance(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range store.Kinds {
		g.Go(func() error {
			_, err := a.coordinator.Tick(gctx, kind)
			return err
		})
	}
	return g.Wait()
}

func (a *app) close() {
	a.lifecycle.Close()
	a.coordinator.StopAll()
	_ = a.logCloser.Close()
}
