package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_directory/internal/config"
	"github.com/locvowork/employee_directory/internal/query"
)

func TestNewDirectory_Embedded(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()

	svc, err := NewDirectory(ctx, &config.EnvConfig{SEED_SOURCE: config.SeedEmbedded}, reg)
	require.NoError(t, err)
	assert.Equal(t, 30, svc.Count(ctx))

	svc.List(ctx, query.DefaultParams())
	n, err := testutil.GatherAndCount(reg, "directory_derivations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewDirectory_SkipsInvalidSeedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`employees:
  - {id: 1, firstName: Ana, lastName: Lopez, email: ana@corp.io, department: HR, role: Manager}
  - {id: 1, firstName: Dup, lastName: Lopez, email: dup@corp.io, department: HR, role: Manager}
  - {id: 2, firstName: Bad, lastName: Mail, email: nope, department: HR, role: Manager}
  - {id: 3, firstName: Kai, lastName: Berg, email: kai@corp.io, department: IT, role: Analyst}
`), 0o600))

	ctx := context.Background()
	svc, err := NewDirectory(ctx, &config.EnvConfig{SEED_SOURCE: config.SeedFile, SEED_FILE: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, svc.Count(ctx))

	first, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", first.FirstName)
}

func TestNewDirectory_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewDirectory(ctx, &config.EnvConfig{SEED_SOURCE: "kafka"}, nil)
	assert.ErrorContains(t, err, "open seed source")

	_, err = NewDirectory(ctx, &config.EnvConfig{SEED_SOURCE: config.SeedFile, SEED_FILE: "/does/not/exist.yaml"}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	reg := prometheus.NewRegistry()
	_, err = NewDirectory(ctx, &config.EnvConfig{}, reg)
	require.NoError(t, err)
	_, err = NewDirectory(ctx, &config.EnvConfig{}, reg)
	assert.ErrorContains(t, err, "register metrics")
}
