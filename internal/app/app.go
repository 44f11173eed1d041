// Package app wires configuration, storage and the HTTP server of one application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"crud-apps/internal/config"
	"crud-apps/internal/logger"
	"crud-apps/internal/notification"
	"crud-apps/internal/router"
	"crud-apps/internal/service"
	"crud-apps/internal/service/ports"
	"crud-apps/internal/storage"
)

var titles = map[config.App]string{
	config.Todo:     "To-do list",
	config.Expenses: "Expense tracker",
	config.Booking:  "Booking system",
}

type App struct {
	cfg        config.Config
	log        *logrus.Logger
	db         *storage.DB
	httpServer *http.Server
}

func New(cfg config.Config) (*App, error) {
	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q", cfg.GinMode)
	}

	a := &App{cfg: cfg, log: logger.New(cfg.LogLevel, cfg.LogFormat)}

	handler, err := a.initHandler(context.Background())
	if err != nil {
		a.close()
		return nil, err
	}

	a.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

// Handler exposes the configured router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

func (a *App) initHandler(ctx context.Context) (http.Handler, error) {
	log := a.log.WithField("app", string(a.cfg.App))

	switch a.cfg.App {
	case config.Todo:
		return router.NewTodoRouter(storage.NewTaskStore(), log)

	case config.Expenses:
		if err := a.openDB(storage.ExpenseSchema, log); err != nil {
			return nil, err
		}
		if a.cfg.Seed {
			if _, err := a.db.SeedExpenses(ctx); err != nil {
				return nil, fmt.Errorf("seed: %w", err)
			}
		}
		return router.NewExpenseRouter(a.db, log)

	case config.Booking:
		if err := a.openDB(storage.BookingSchema, log); err != nil {
			return nil, err
		}
		if a.cfg.Seed {
			if _, err := a.db.SeedBooking(ctx); err != nil {
				return nil, fmt.Errorf("seed: %w", err)
			}
		}
		svc := service.NewBookingService(a.db, a.notifier(log), log)
		return router.NewBookingRouter(a.db, svc, log)

	default:
		return nil, fmt.Errorf("unknown app %q", a.cfg.App)
	}
}

func (a *App) openDB(schema storage.Schema, log logrus.FieldLogger) error {
	db, err := storage.NewDB(a.cfg.DBPath, schema, log)
	if err != nil {
		return fmt.Errorf("open database %s: %w", a.cfg.DBPath, err)
	}
	a.db = db
	log.WithField("path", a.cfg.DBPath).Info("database ready")
	return nil
}

func (a *App) notifier(log logrus.FieldLogger) ports.BookingNotifier {
	if a.cfg.AMQPURL != "" {
		log.Info("publishing booking notifications to RabbitMQ")
		return notification.NewAMQPNotifier(a.cfg.AMQPURL, log)
	}
	return notification.NewLogNotifier(log)
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printBanner(os.Stdout, a.cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.WithField("addr", a.httpServer.Addr).Info("HTTP server starting")
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown()
	})
	return g.Wait()
}

func (a *App) shutdown() error {
	a.log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.Info("HTTP server stopped")

	if err := a.close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	a.log.Info("app stopped")
	return nil
}

func (a *App) close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func printBanner(w io.Writer, cfg config.Config) {
	title := color.New(color.FgCyan, color.Bold).SprintFunc()
	addr := color.New(color.FgGreen).SprintFunc()

	host := cfg.Host
	if host == "0.0.0.0" || host == "" {
		host = "localhost"
	}
	fmt.Fprintf(w, "%s listening on %s\n", title(titles[cfg.App]), addr(fmt.Sprintf("http://%s:%d", host, cfg.Port)))
	if cfg.DBPath != "" {
		fmt.Fprintf(w, "  database: %s\n", cfg.DBPath)
	}
}
