package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	httpadp "pf-loan-generator/internal/adapter/http"
	"pf-loan-generator/internal/adapter/lock"
	mw "pf-loan-generator/internal/adapter/middleware"
	"pf-loan-generator/internal/adapter/pdf"
	"pf-loan-generator/internal/adapter/raster"
	"pf-loan-generator/internal/adapter/repository/mysql"
	"pf-loan-generator/internal/adapter/repository/sessionstore"
	"pf-loan-generator/internal/config"
	"pf-loan-generator/internal/domain/application"
	exportDomain "pf-loan-generator/internal/domain/export"
	"pf-loan-generator/internal/infrastructure/cache"
	"pf-loan-generator/internal/infrastructure/db"
	"pf-loan-generator/internal/logging"
	"pf-loan-generator/internal/usecase/export"
	"pf-loan-generator/internal/usecase/letter"
	"pf-loan-generator/internal/usecase/session"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotenv(); err != nil {
		return err
	}
	cfg := config.Load()

	level, lerr := logging.ParseLevel(cfg.LogLevel)
	log := logging.New(os.Stdout, level, cfg.LogFormat)
	slog.SetDefault(log)
	if lerr != nil {
		log.Warn("config", "err", lerr)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	sessionTTL := time.Duration(cfg.SessionTTLSecs) * time.Second
	busyTTL := time.Duration(cfg.BusyTTLSecs) * time.Second

	var (
		repo   application.Repository
		locker exportDomain.Locker
	)
	switch cfg.SessionStore {
	case config.StoreRedis:
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB, cache.DefaultDialTimeout)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
		repo = sessionstore.NewRedisRepository(rdb, sessionTTL)
		locker = lock.NewRedis(rdb, busyTTL, log)
	default:
		repo = sessionstore.NewMemoryRepository(sessionTTL)
		locker = lock.NewMemory()
	}

	var ledger exportDomain.Repository
	if cfg.DBDriver != config.DriverNone {
		gdb, err := openLedger(cfg)
		if err != nil {
			return fmt.Errorf("export ledger: %w", err)
		}
		ledger = mysql.NewExportRepository(gdb)
	}

	fonts, err := raster.LoadGoFonts()
	if err != nil {
		return err
	}
	region := func(l letter.Letter) (export.Region, error) {
		r, err := raster.NewLetterRegion(l, fonts, raster.DefaultStyle)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	bp := letter.DefaultBoilerplate()
	sessions := session.NewUsecase(repo, bp)
	opts := []export.Option{export.WithLogger(log)}
	if ledger != nil {
		opts = append(opts, export.WithLedger(ledger))
	}
	pipeline := export.NewPipeline(raster.NewRasterizer(log), pdf.NewAssembler(bp.Title, "pf-loan-generator"), locker, opts...)

	xh := httpadp.NewExportHandler(sessions, pipeline, region, ledger, log)
	ph, err := httpadp.NewPageHandler(sessions, xh)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Recover(), mw.RequestID(), mw.RequestLogger(log))

	// routes
	httpadp.Register(e, httpadp.NewHandler(cfg.SessionStore, ledger != nil), httpadp.NewSessionHandler(sessions), xh, ph)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "session_store", cfg.SessionStore, "db_driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}

func openLedger(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == config.DriverSQLite {
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}
	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.LedgerDSN(), db.LogLevel(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	if err := gdb.AutoMigrate(&exportDomain.Record{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gdb, nil
}
