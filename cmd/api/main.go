package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/hrms-lite-go/internal/config"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	appHTTP "github.com/cmlabs-hris/hrms-lite-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-lite-go/internal/repository/hrmsapi"
	"github.com/cmlabs-hris/hrms-lite-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hrms-lite-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/hrms-lite-go/internal/service/employee"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.App)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		attendanceRepo attendance.AttendanceRepository
		employeeRepo   employee.EmployeeRepository
	)
	switch cfg.Source.Type {
	case config.SourceHTTP:
		client, err := hrmsapi.NewClient(cfg.Source.BaseURL, cfg.Source.APITimeout)
		if err != nil {
			return fmt.Errorf("create hrms api client: %w", err)
		}
		attendanceRepo = hrmsapi.NewAttendanceRepository(client)
		employeeRepo = hrmsapi.NewEmployeeRepository(client)
	case config.SourcePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()
		attendanceRepo = postgresql.NewAttendanceRepository(db)
		employeeRepo = postgresql.NewEmployeeRepository(db)
	default:
		return fmt.Errorf("unsupported source type %q", cfg.Source.Type)
	}
	slog.Info("Record source configured", "type", cfg.Source.Type, "timezone", loc.String())

	monthViews := attendanceService.NewMonthViewStore(cfg.Cache.TTL)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, monthViews, loc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, monthViews)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		logger,
		cfg.App.AllowedOrigins,
		attendanceHandler,
		employeeHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewCacheJobs(monthViews, cfg.Cache.PruneInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
