package bootstrap

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/locvowork/employee_directory/internal/config"
	"github.com/locvowork/employee_directory/internal/database"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/locvowork/employee_directory/internal/metrics"
	"github.com/locvowork/employee_directory/internal/repository"
	"github.com/locvowork/employee_directory/internal/service"
)

// NewDirectory loads the configured seed source into a fresh store and returns the
// service over it. Invalid seed records are logged and left out. With a nil reg no
// metrics are recorded.
func NewDirectory(ctx context.Context, cfg *config.EnvConfig, reg prometheus.Registerer) (*service.EmployeeService, error) {
	src, closeSrc, err := database.OpenSource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open seed source: %w", err)
	}
	defer func() {
		if err := closeSrc(); err != nil {
			logger.WarnLog(ctx, "close seed source: %v", err)
		}
	}()

	rep, err := database.NewImporter(0).ImportFrom(ctx, src)
	if err != nil {
		return nil, err
	}
	for _, rej := range rep.Rejected {
		logger.WarnLog(ctx, "skipping seed %v", rej)
	}
	logger.InfoLog(ctx, "loaded %d employees from %s seed", len(rep.Valid), seedName(cfg))

	repo, err := repository.NewEmployeeRepository(ctx, rep.Valid)
	if err != nil {
		return nil, err
	}

	opts := []service.Option{}
	if reg != nil {
		rec, err := metrics.NewRecorder(reg)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		opts = append(opts, service.WithMetrics(rec))
	}
	if cfg.EXPORT_CONFIG_PATH != "" {
		opts = append(opts, service.WithExportTemplateFile(cfg.EXPORT_CONFIG_PATH))
	}
	return service.NewEmployeeService(repo, opts...), nil
}

func seedName(cfg *config.EnvConfig) string {
	if cfg.SEED_SOURCE == "" {
		return config.SeedEmbedded
	}
	return cfg.SEED_SOURCE
}
