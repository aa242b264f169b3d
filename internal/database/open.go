package database

import (
	"context"
	"fmt"

	"github.com/locvowork/employee_directory/internal/config"
)

func noopClose() error { return nil }

// PostgresConfig extracts the connection settings from cfg.
func PostgresConfig(cfg *config.EnvConfig) Config {
	return Config{
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	}
}

// OpenSource builds the Source selected by SEED_SOURCE. The returned func releases whatever
// client the source holds and must be called once the source has been loaded.
func OpenSource(ctx context.Context, cfg *config.EnvConfig) (Source, func() error, error) {
	switch cfg.SEED_SOURCE {
	case "", config.SeedEmbedded:
		return EmbeddedSource(), noopClose, nil

	case config.SeedFile:
		if cfg.SEED_FILE == "" {
			return nil, nil, fmt.Errorf("SEED_SOURCE=%s needs SEED_FILE", config.SeedFile)
		}
		return FileSource{Path: cfg.SEED_FILE}, noopClose, nil

	case config.SeedPostgres:
		db, err := NewPostgresDB(ctx, PostgresConfig(cfg))
		if err != nil {
			return nil, nil, err
		}
		return PostgresSource{DB: db, AfterID: cfg.DB_SEED_AFTER_ID, Limit: cfg.DB_SEED_LIMIT}, db.Close, nil

	case config.SeedElastic:
		es, err := NewElasticSearchClient(cfg.ELASTIC_URL, cfg.ELASTIC_INDEX)
		if err != nil {
			return nil, nil, err
		}
		return ElasticSource{Client: es}, func() error { es.Stop(); return nil }, nil

	case config.SeedDatastore:
		dc, err := NewDatastoreClient(ctx, cfg.DATASTORE_PROJECT_ID, cfg.DATASTORE_KIND)
		if err != nil {
			return nil, nil, err
		}
		return DatastoreSource{Client: dc}, dc.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown SEED_SOURCE %q", cfg.SEED_SOURCE)
	}
}
