package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/locvowork/employee_directory/internal/config"
	"github.com/locvowork/employee_directory/internal/database"
	"github.com/locvowork/employee_directory/internal/logger"
)

func main() {
	// Define flags
	preset := flag.String("preset", "small", "Data preset: small, medium, large, xlarge")
	count := flag.Int("count", 0, "Number of employees (overrides preset)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed; the same seed generates the same employees")
	out := flag.String("out", "employees.yaml", "YAML seed file written by the file target")
	targets := flag.String("targets", "file", "Comma separated targets: file, postgres, elastic, datastore")

	flag.Parse()

	ctx := context.Background()

	if err := config.LoadEnvConfig(); err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg := config.DefaultEnvConfig
	logger.InitLogging(logger.Options{FilePath: cfg.LOG_FILE_PATH, Level: cfg.LOG_LEVEL, Console: true})

	n := *count
	if n <= 0 {
		size, err := database.GetPresetSize(database.SeedPreset(*preset))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			flag.PrintDefaults()
			os.Exit(2)
		}
		n = size
	}

	sinks, closeAll, err := openSinks(ctx, cfg, strings.Split(*targets, ","), *out)
	if err != nil {
		log.Fatalf("open targets: %v", err)
	}
	defer closeAll()

	seeder := database.NewDataSeeder(database.NewGenerator(*seed), sinks)
	if _, err := seeder.SeedData(ctx, n); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Printf("Seeded %d employees (seed %d) into %s\n", n, *seed, *targets)
}

func openSinks(ctx context.Context, cfg *config.EnvConfig, targets []string, out string) (map[string]database.Sink, func(), error) {
	sinks := make(map[string]database.Sink)
	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	for _, target := range targets {
		switch strings.TrimSpace(target) {
		case config.SeedFile:
			sinks[config.SeedFile] = database.FileSink{Path: out}

		case config.SeedPostgres:
			db, err := database.NewPostgresDB(ctx, database.PostgresConfig(cfg))
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, func() { db.Close() })
			sinks[config.SeedPostgres] = database.PostgresSink{DB: db}

		case config.SeedElastic:
			es, err := database.NewElasticSearchClient(cfg.ELASTIC_URL, cfg.ELASTIC_INDEX)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, es.Stop)
			sinks[config.SeedElastic] = database.ElasticSink{Client: es}

		case config.SeedDatastore:
			dc, err := database.NewDatastoreClient(ctx, cfg.DATASTORE_PROJECT_ID, cfg.DATASTORE_KIND)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, func() { dc.Close() })
			sinks[config.SeedDatastore] = database.DatastoreSink{Client: dc}

		default:
			closeAll()
			return nil, nil, fmt.Errorf("unknown target %q", target)
		}
	}
	return sinks, closeAll, nil
}
