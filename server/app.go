package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"depot/config"
	"depot/internal/db"
	"depot/internal/health"
	"depot/internal/logs"
	"depot/internal/middleware"
	"depot/internal/models"
	"depot/internal/warehouse"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type App struct {
	cfg        *config.Config
	Router     *mux.Router
	httpServer *http.Server

	db     *gorm.DB
	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	if drv := a.cfg.Database.Driver; drv != "" {
		d, err := db.Open(drv, a.cfg.Database.DSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		a.db = d
	}

	if a.db != nil {
		// 1) One-off rename of reserved grid columns (MySQL-safe)
		if err := db.MigrateReservedColumns(a.db); err != nil {
			logs.Logger.Warnf("reserved columns migration: %v", err)
		}

		// 2) AutoMigrate the three warehouse tables
		if err := a.db.AutoMigrate(
			&models.Layout{},
			&models.Group{},
			&models.Location{},
		); err != nil {
			log.Fatalf("db migrate failed: %v", err)
		}

		// 3) Unique (group, row, col) cell index
		if err := db.MigrateLocationCellIndex(a.db); err != nil {
			logs.Logger.Warnf("location cell index migration: %v", err)
		}

		// Intentional no-op seed hook: an empty store stays empty.
		var layouts int64
		if err := a.db.Model(&models.Layout{}).Count(&layouts).Error; err == nil && layouts == 0 {
			logs.Logger.Info("store holds no layouts; skipping sample data")
		}
	}

	a.Router = mux.NewRouter()
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.Recoverer)
	a.Router.Use(middleware.LoggerMW)

	a.RegisterWebUI("/ui/")

	if a.db != nil {
		health.RegisterRoutesWithDB(a.Router, a.db) // /healthz and /readyz
	} else {
		health.RegisterRoutes(a.Router) // /healthz only
	}

	if a.db != nil {
		repo := warehouse.NewRepo(a.db)
		svc := warehouse.NewService(repo)

		warehouse.NewHTTP(svc).RegisterRoutes(a.Router)
		warehouse.NewGroupHTTP(svc).RegisterRoutes(a.Router)
		warehouse.NewLocationHTTP(svc).RegisterRoutes(a.Router)
	}

	a.Router.Walk(func(rt *mux.Route, r *mux.Router, ancestors []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return ErrNotInitialized
	}
	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigs; a.cancel() }()

	a.httpServer = &http.Server{
		Addr:         bind,
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.httpServer.Shutdown(ctx)
	return nil
}

var ErrNotInitialized = &initError{"server not initialized (call Initialize(cfg) first)"}

type initError struct{ s string }

func (e *initError) Error() string { return e.s }
