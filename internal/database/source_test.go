package database

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_directory/internal/config"
	"github.com/locvowork/employee_directory/internal/domain"
)

func TestEmbeddedSource(t *testing.T) {
	records, err := EmbeddedSource().Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 30)

	assert.Equal(t, domain.Employee{
		ID:         1,
		FirstName:  "John",
		LastName:   "Smith",
		Email:      "john.smith@company.com",
		Department: domain.DepartmentIT,
		Role:       domain.RoleDeveloper,
	}, records[0])

	rep, err := NewImporter(4).Import(context.Background(), records)
	require.NoError(t, err)
	assert.Empty(t, rep.Rejected, "the bundled sample must be clean")
	assert.Len(t, rep.Valid, 30)
}

func TestDecodeSeed(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		records, err := DecodeSeed(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := DecodeSeed(strings.NewReader("employees:\n  - id: 1\n    salary: 10\n"))
		assert.Error(t, err)
	})

	t.Run("encode then decode", func(t *testing.T) {
		in := []domain.Employee{
			{ID: 3, FirstName: "Émile", LastName: "Zola", Email: "emile@corp.io", Department: domain.DepartmentHR, Role: domain.RoleAnalyst},
		}
		var buf bytes.Buffer
		require.NoError(t, EncodeSeed(&buf, in))
		assert.Contains(t, buf.String(), "employees:")
		assert.Contains(t, buf.String(), "firstName: Émile")

		out, err := DecodeSeed(&buf)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := FileSource{Path: filepath.Join(dir, "nope.yaml")}.Load(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("written by the file sink", func(t *testing.T) {
		path := filepath.Join(dir, "seed.yaml")
		gen := NewGenerator(7)
		want, err := gen.Generate(context.Background(), 12)
		require.NoError(t, err)
		require.NoError(t, FileSink{Path: path}.Write(context.Background(), want))

		got, err := FileSource{Path: path}.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestOpenSource(t *testing.T) {
	ctx := context.Background()

	src, closeFn, err := OpenSource(ctx, &config.EnvConfig{SEED_SOURCE: config.SeedEmbedded})
	require.NoError(t, err)
	defer closeFn()
	records, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 30)

	_, _, err = OpenSource(ctx, &config.EnvConfig{SEED_SOURCE: config.SeedFile})
	assert.ErrorContains(t, err, "SEED_FILE")

	src, _, err = OpenSource(ctx, &config.EnvConfig{SEED_SOURCE: config.SeedFile, SEED_FILE: "x.yaml"})
	require.NoError(t, err)
	assert.Equal(t, FileSource{Path: "x.yaml"}, src)

	_, _, err = OpenSource(ctx, &config.EnvConfig{SEED_SOURCE: "redis"})
	assert.ErrorContains(t, err, `unknown SEED_SOURCE "redis"`)
}

func TestPostgresSource_SelectQuery(t *testing.T) {
	query, args := PostgresSource{Limit: 50}.SelectQuery()
	assert.Equal(t, "SELECT id, first_name, last_name, email, department, role FROM employee ORDER BY id LIMIT 50", query)
	assert.Empty(t, args)

	query, _ = PostgresSource{Table: "hr.staff"}.SelectQuery()
	assert.Equal(t, "SELECT id, first_name, last_name, email, department, role FROM hr.staff ORDER BY id", query)

	query, args = PostgresSource{AfterID: 120, Limit: 10}.SelectQuery()
	assert.Equal(t, "SELECT id, first_name, last_name, email, department, role FROM employee WHERE id > $1 ORDER BY id LIMIT 10", query)
	assert.Equal(t, []interface{}{120}, args)
}

func TestConfig_DSN(t *testing.T) {
	cfg := PostgresConfig(&config.EnvConfig{
		DB_HOST: "db", DB_PORT: 5433, DB_USER: "u", DB_PASSWORD: "p", DB_NAME: "dir", DB_SSL_MODE: "disable",
	})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=dir sslmode=disable", cfg.DSN())
}
