package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/hirelane/ats/internal/api"
	"github.com/hirelane/ats/internal/api/handler"
	"github.com/hirelane/ats/internal/api/metrics"
	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
	"github.com/hirelane/ats/internal/core/service"
	"github.com/hirelane/ats/internal/infrastructure/crypto"
	"github.com/hirelane/ats/internal/infrastructure/db/memory"
	"github.com/hirelane/ats/internal/infrastructure/db/mongo"
	"github.com/hirelane/ats/internal/infrastructure/db/redis"
	"github.com/hirelane/ats/internal/infrastructure/notify"
	"github.com/hirelane/ats/internal/infrastructure/queue"
	"github.com/hirelane/ats/internal/infrastructure/tracing"
	"github.com/hirelane/ats/internal/pkg/config"
	"github.com/hirelane/ats/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	outboxCapacity  = 1000
)

// NewServeCommand starts the HTTP API and blocks until SIGINT or SIGTERM.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			log := logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.LogPretty,
				Service: cfg.Tracing.ServiceName,
				Env:     cfg.Env,
			})
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           tracing.Handler(a.router, cfg.Tracing.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	a.chatHub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// app owns every long-lived component of a running server.
type app struct {
	log     zerolog.Logger
	store   *memory.Store
	router  http.Handler
	chatHub *handler.ChatHub

	cancelWorkers context.CancelFunc
	dispatcher    *queue.Dispatcher
	mirrorDone    chan struct{}

	mongoClient *gomongo.Client
	redisClient *goredis.Client
	traceStop   tracing.ShutdownFunc
}

// newApp builds the store, its subscribers, the optional backends and the
// services, and returns them wired into a router. Mongo and Redis are only
// contacted when configured.
func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{log: log}
	ok := false
	defer func() {
		if !ok {
			a.close()
		}
	}()

	traceStop, err := tracing.Init(ctx, log, tracing.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Env,
	})
	if err != nil {
		return nil, err
	}
	a.traceStop = traceStop

	passwords, err := crypto.NewMatcher(cfg.PasswordMode)
	if err != nil {
		return nil, err
	}

	var seed domain.Dataset
	if cfg.SeedDemo {
		seed = memory.DemoDataset(time.Now().UTC())
		if err := service.HashCredentials(&seed, passwords); err != nil {
			return nil, err
		}
	}
	a.store = memory.NewStore(seed)
	a.store.Subscribe(metrics.ObserveStore)
	metrics.RecordSnapshot(seed, time.Now().UTC())

	a.chatHub = handler.NewChatHub(len(seed.ChatMessages), logger.Component(log, "chat"))
	a.store.Subscribe(a.chatHub.Observe)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	a.cancelWorkers = cancelWorkers

	var db *gomongo.Database
	if cfg.Mongo.URI != "" {
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.mongoClient, db = client, database
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return nil, err
		}

		mirror := mongo.NewMirror(db, logger.Component(log, "mirror"))
		a.store.Subscribe(mirror.Observe)
		mirror.Seed(a.store.Snapshot())
		a.mirrorDone = make(chan struct{})
		go func() {
			defer close(a.mirrorDone)
			mirror.Run(workerCtx)
		}()
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo reporting mirror enabled")
	}

	var sink ports.NotificationSink = notify.NewOutbox(outboxCapacity)
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		a.redisClient = rdb
		sink = redis.NewNotificationSink(rdb, cfg.Redis.NotificationKey)
		log.Info().Str("key", cfg.Redis.NotificationKey).Msg("redis notification sink enabled")
	}

	a.dispatcher = queue.NewDispatcher(cfg.NotifyWorkers, sink, logger.Component(log, "notifications"))
	a.dispatcher.Start(workerCtx)

	a.router = api.NewRouter(api.Deps{
		Log:            log,
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		Store:          a.store,
		Mongo:          db,
		Redis:          a.redisClient,
		Auth:           service.NewAuthService(a.store, passwords, cfg.JWTSecret, cfg.TokenTTL, log),
		Users:          service.NewUserService(a.store, passwords, log),
		Clients:        service.NewClientService(a.store, passwords, log),
		Positions:      service.NewPositionService(a.store, log),
		Candidates:     service.NewCandidateService(a.store, a.dispatcher, log),
		Invoices:       service.NewInvoiceService(a.store, log),
		Chat:           service.NewChatService(a.store, log),
		ChatHub:        a.chatHub,
		Reports:        service.NewReportService(a.store, log),
		Notifications:  service.NewNotificationService(sink, log),
	})

	ok = true
	return a, nil
}

// close stops background work and releases connections. It tolerates a
// partially built app.
func (a *app) close() {
	if a.cancelWorkers != nil {
		a.cancelWorkers()
	}
	if a.dispatcher != nil {
		a.dispatcher.Wait()
	}
	if a.mirrorDone != nil {
		<-a.mirrorDone
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.log.Warn().Err(err).Msg("mongo disconnect")
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
	if a.traceStop != nil {
		if err := a.traceStop(ctx); err != nil {
			a.log.Warn().Err(err).Msg("tracing shutdown")
		}
	}
}
