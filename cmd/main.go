package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "aquarium_controller/docs"
	"aquarium_controller/internal/config"
	"aquarium_controller/internal/control"
	"aquarium_controller/internal/handlers"
	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/repository"
	"aquarium_controller/internal/repository/db"
	"aquarium_controller/internal/server"
	"aquarium_controller/internal/service"
	"aquarium_controller/internal/transport"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

// @title        Aquarium Controller API
// @version      1.0
// @description  Status, history and operator controls for the aquarium control core.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	conn, err := openDB(cfg.DB, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// a dropped broker connection ends the process
	lost := make(chan error, 1)
	bus, err := transport.Open(cfg.Transport, log, func(err error) {
		select {
		case lost <- err:
		default:
		}
	})
	if err != nil {
		log.Fatalw("failed to connect transport", "kind", cfg.Transport.Kind, "err", err)
	}
	defer func() { _ = bus.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := control.NewMetrics(reg)
	if err != nil {
		log.Fatalw("failed to register metrics", "err", err)
	}

	core := control.New(control.SettingsFrom(cfg.Control), cfg.Topics, bus, log, metrics)
	if err := subscribeCore(ctx, bus, core, log); err != nil {
		log.Fatalw("failed to subscribe control topics", "err", err)
	}
	go core.Run(ctx)

	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Deps{
		Bus:    bus,
		Status: core,
		Topics: cfg.Topics,
		Auth:   cfg.Auth,
		Log:    log,
	})

	if cfg.Recorder.Enabled {
		if err := services.Recorder.Attach(bus); err != nil {
			log.Fatalw("failed to attach recorder", "err", err)
		}
	}
	if cfg.Simulator.Enabled {
		if err := services.Simulator.Attach(); err != nil {
			log.Fatalw("failed to attach simulator", "err", err)
		}
		go services.Simulator.Run(ctx, cfg.Simulator.Tick)
	}

	srv := &server.Server{}
	if cfg.HTTP.Enabled {
		apiHandler := handlers.NewHandler(services, log).WithMetrics(reg)
		runHTTPServer(srv, cfg.HTTP.Port, apiHandler, log)
	}

	log.Infow("controller_started", "transport", cfg.Transport.Kind, "http", cfg.HTTP.Enabled,
		"recorder", cfg.Recorder.Enabled, "simulator", cfg.Simulator.Enabled)

	waitForShutdown(cancel, lost, srv, log)
}

// subscribeCore routes every inbound topic into the control core's queue.
func subscribeCore(ctx context.Context, bus transport.Bus, core *control.Core, log *logger.Logger) error {
	for _, topic := range core.Topics() {
		err := bus.Subscribe(topic, func(topic string, payload []byte) {
			if err := core.Submit(ctx, topic, payload); err != nil &&
				!errors.Is(err, context.Canceled) && !errors.Is(err, control.ErrStopped) {
				log.Warnw("submit_failed", "topic", topic, "err", err)
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func openDB(cfg config.DBConfig, log *logger.Logger) (*sql.DB, error) {
	path := cfg.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "aquarium_data.db")
		path = "aquarium_data.db"
	}
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until a termination signal or a lost transport.
func waitForShutdown(cancel context.CancelFunc, lost <-chan error, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Infow("shutting down...", "signal", sig.String())
	case err := <-lost:
		log.Errorw("transport connection lost; shutting down", "err", err)
	}

	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
