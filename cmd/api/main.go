package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backend-erickshaw/internal/config"
	"backend-erickshaw/internal/db"
	"backend-erickshaw/internal/logger"
	"backend-erickshaw/internal/server"
	"backend-erickshaw/internal/simulator"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig      func() config.Config
	connectPostgres func(config.Config) (*pgxpool.Pool, error)
	connectRedis    func(config.Config) *redis.Client
	ensureSchema    func(context.Context, db.Querier) error
	notify          func(chan<- os.Signal, ...os.Signal)
	run             func(context.Context, config.Config, *pgxpool.Pool, *redis.Client, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:      config.Load,
		connectPostgres: db.ConnectPostgres,
		connectRedis:    db.ConnectRedis,
		ensureSchema:    db.EnsureSchema,
		notify:          signal.Notify,
		run:             Run,
	}
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()
	logger.Setup(cfg)
	log := logger.For("api")

	pg, err := deps.connectPostgres(cfg)
	if err != nil {
		log.WithError(err).Error("postgres connection failed")
	}
	if pg != nil && deps.ensureSchema != nil {
		if err := deps.ensureSchema(context.Background(), pg); err != nil {
			log.WithError(err).Error("schema setup failed")
		}
	}

	rdb := deps.connectRedis(cfg)

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, pg, rdb, signals, nil); err != nil {
		log.WithError(err).Error("server exited with error")
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run starts the HTTP server and the trip simulator, then waits for
// termination signals.
func Run(ctx context.Context, cfg config.Config, pg *pgxpool.Pool, rdb *redis.Client, signals <-chan os.Signal, listen ListenFunc) error {
	srv := server.NewServer(cfg, pg, rdb)

	if listen == nil {
		listen = defaultListen
	}

	simCtx, stopSim := context.WithCancel(ctx)
	defer stopSim()
	simDone := make(chan struct{})
	if cfg.SimEnabled {
		go func() {
			defer close(simDone)
			simulator.NewRunner(srv.Demo, cfg).Run(simCtx)
		}()
	} else {
		close(simDone)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	var runErr error
	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		runErr = err
	}

	stopSim()
	<-simDone
	if runErr != nil {
		_ = srv.Stream.Close()
		return runErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownFn(srv.App, shutdownCtx); err != nil {
		return err
	}
	if err := srv.Stream.Close(); err != nil {
		logger.For("api").WithError(err).Warn("stream hub close")
	}
	if pg != nil {
		pg.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}
