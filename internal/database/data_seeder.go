package database

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/locvowork/employee_directory/pkg/dataflow"
)

var (
	firstNames = []string{"John", "Sarah", "Mike", "Emily", "David", "Lisa", "Ana", "Omar", "Chen", "Priya", "Lukas", "Émile", "Sofia", "Kenji", "Maya", "Noah"}
	lastNames  = []string{"Smith", "Johnson", "Brown", "Davis", "Wilson", "Anderson", "Taylor", "Lopez", "Nguyen", "Patel", "Müller", "Kowalski", "Rossi", "Tanaka", "Okafor", "Dubois"}
)

// Presets
type SeedPreset string

const (
	PresetSmall  SeedPreset = "small"
	PresetMedium SeedPreset = "medium"
	PresetLarge  SeedPreset = "large"
	PresetXLarge SeedPreset = "xlarge"
)

// GetPresetSize returns the number of records a preset generates.
func GetPresetSize(preset SeedPreset) (int, error) {
	switch preset {
	case PresetSmall:
		return 25, nil
	case PresetMedium:
		return 100, nil
	case PresetLarge:
		return 1000, nil
	case PresetXLarge:
		return 10000, nil
	default:
		return 0, fmt.Errorf("unknown preset %q", preset)
	}
}

const generateChunk = 250

// Generator produces valid random employees with ids 1..n. The same seed always yields the
// same records.
type Generator struct {
	seed int64
}

func NewGenerator(seed int64) *Generator {
	return &Generator{seed: seed}
}

// Generate builds n records. Chunks are produced concurrently, each from its own
// deterministic source, and merged back into id order.
func (g *Generator) Generate(ctx context.Context, n int) ([]domain.Employee, error) {
	if n <= 0 {
		return nil, nil
	}

	var streams []dataflow.Stream[domain.Employee]
	for start, chunk := 1, int64(0); start <= n; start, chunk = start+generateChunk, chunk+1 {
		end := start + generateChunk - 1
		if end > n {
			end = n
		}
		streams = append(streams, g.chunk(ctx, chunk, start, end))
	}

	records, err := dataflow.Collect(ctx, dataflow.FanIn(ctx, streams...))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (g *Generator) chunk(ctx context.Context, chunk int64, start, end int) dataflow.Stream[domain.Employee] {
	out := make(chan domain.Employee)
	go func() {
		defer close(out)
		rng := rand.New(rand.NewSource(g.seed + chunk))
		for id := start; id <= end; id++ {
			select {
			case <-ctx.Done():
				return
			case out <- randomEmployee(rng, id):
			}
		}
	}()
	return out
}

func randomEmployee(rng *rand.Rand, id int) domain.Employee {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	return domain.Employee{
		ID:         id,
		FirstName:  first,
		LastName:   last,
		Email:      fmt.Sprintf("%s.%s.%d@company.com", emailPart(first), emailPart(last), id),
		Department: domain.Departments[rng.Intn(len(domain.Departments))],
		Role:       domain.Roles[rng.Intn(len(domain.Roles))],
	}
}

// emailPart lowercases a name and drops anything outside a-z.
func emailPart(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Sink receives generated records.
type Sink interface {
	Write(ctx context.Context, records []domain.Employee) error
}

// YAMLSink writes a seed document that FileSource can read back.
type YAMLSink struct {
	W io.Writer
}

func (s YAMLSink) Write(_ context.Context, records []domain.Employee) error {
	return EncodeSeed(s.W, records)
}

// FileSink writes a seed document to Path, replacing it.
type FileSink struct {
	Path string
}

func (s FileSink) Write(ctx context.Context, records []domain.Employee) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("create seed file: %w", err)
	}
	if err := (YAMLSink{W: f}).Write(ctx, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type DataSeeder struct {
	gen   *Generator
	sinks map[string]Sink
}

// NewDataSeeder writes to every named sink. Names only appear in logs and errors.
func NewDataSeeder(gen *Generator, sinks map[string]Sink) *DataSeeder {
	return &DataSeeder{gen: gen, sinks: sinks}
}

// SeedData generates n records and hands them to each sink in name order.
func (ds *DataSeeder) SeedData(ctx context.Context, n int) ([]domain.Employee, error) {
	start := time.Now()
	logger.InfoLog(ctx, "generating %d employees", n)

	records, err := ds.gen.Generate(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("generate employees: %w", err)
	}

	names := make([]string, 0, len(ds.sinks))
	for name := range ds.sinks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ds.sinks[name].Write(ctx, records); err != nil {
			return nil, fmt.Errorf("write to %s: %w", name, err)
		}
		logger.InfoLog(ctx, "wrote %d employees to %s", len(records), name)
	}

	logger.InfoLog(ctx, "seeding done in %v", time.Since(start))
	return records, nil
}
