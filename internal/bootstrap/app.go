package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/locvowork/employee_directory/internal/config"
	"github.com/locvowork/employee_directory/internal/handler"
	"github.com/locvowork/employee_directory/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Echo     *echo.Echo
	Config   *config.EnvConfig
	Registry *prometheus.Registry
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{
		Echo:     e,
		Registry: prometheus.NewRegistry(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	a.Config = config.DefaultEnvConfig

	// Initialize logging
	logger.InitLogging(logger.Options{
		FilePath: a.Config.LOG_FILE_PATH,
		Level:    a.Config.LOG_LEVEL,
		Console:  true,
	})
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize dependencies
	empSvc, err := NewDirectory(ctx, a.Config, a.Registry)
	if err != nil {
		return fmt.Errorf("failed to initialize directory: %w", err)
	}
	empHandler := handler.NewEmployeeHandler(empSvc, a.Config.DEFAULT_PAGE_SIZE)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(empHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
	a.Echo.Use(handler.RequestLogger())
}

func (a *App) RegisterRoutes(empHandler *handler.EmployeeHandler) {
	a.Echo.GET("/health", empHandler.HealthHandler)
	a.Echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})))

	a.Echo.GET("/employees", empHandler.ListHandler)
	a.Echo.GET("/employees/export", empHandler.ExportHandler)
	a.Echo.POST("/employees", empHandler.CreateHandler)
	a.Echo.GET("/employees/:id", empHandler.GetHandler)
	a.Echo.PUT("/employees/:id", empHandler.UpdateHandler)
	a.Echo.DELETE("/employees/:id", empHandler.DeleteHandler)
}

// Run serves until ctx ends, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := ":" + a.Config.APP_PORT
		logger.InfoLog(ctx, "listening on %s", addr)
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.InfoLog(ctx, "shutting down")
		return a.Echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
