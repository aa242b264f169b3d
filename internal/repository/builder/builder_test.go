package builder

import (
	"strings"
	"testing"
)

func TestSQLBuilder(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("id", "first_name").From("employee").Where("id = ?", 1).Build()
		expected := "SELECT id, first_name FROM employee WHERE id = $1"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 || args[0] != 1 {
			t.Errorf("expected args [1], got %v", args)
		}
	})

	t.Run("Select with conditions, order and limit", func(t *testing.T) {
		query, args := NewSQLBuilder().
			Select("id", "email").
			From("employee").
			Where("department = ?", "IT").
			Where("role = ?", "Developer").
			OrderBy("id").
			Limit(25).
			Build()
		expected := "SELECT id, email FROM employee WHERE department = $1 AND role = $2 ORDER BY id LIMIT 25"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != "IT" || args[1] != "Developer" {
			t.Errorf("expected args [IT Developer], got %v", args)
		}
	})

	t.Run("Insert", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Insert("employee", "first_name", "role").Values("Alice", "Manager").Build()
		expected := "INSERT INTO employee (first_name, role) VALUES ($1, $2)"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != "Alice" || args[1] != "Manager" {
			t.Errorf("expected args [Alice Manager], got %v", args)
		}
	})

	t.Run("Insert on conflict do nothing", func(t *testing.T) {
		query, _ := NewSQLBuilder().Insert("employee", "id").Values(7).OnConflictDoNothing().Build()
		expected := "INSERT INTO employee (id) VALUES ($1) ON CONFLICT DO NOTHING"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
	})
}

func TestSQLBuilderBuildSafe(t *testing.T) {
	t.Run("matching placeholders", func(t *testing.T) {
		query, args, err := NewSQLBuilder().
			Select("id").
			From("employee").
			Where("id > ? AND id < ?", 1, 10).
			BuildSafe()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if query != "SELECT id FROM employee WHERE id > $1 AND id < $2" {
			t.Errorf("unexpected query %s", query)
		}
		if len(args) != 2 {
			t.Errorf("expected 2 args, got %v", args)
		}
	})

	tests := []struct {
		name    string
		builder *SQLBuilder
		wantErr string
	}{
		{
			name:    "missing argument",
			builder: NewSQLBuilder().Select("id").From("employee").Where("id = ? OR id = ?", 1),
			wantErr: "placeholder count (2) does not match argument count (1)",
		},
		{
			name:    "extra argument",
			builder: NewSQLBuilder().Select("id").From("employee").Where("id = 1", 1),
			wantErr: "placeholder count (0) does not match argument count (1)",
		},
		{
			name:    "insert value count",
			builder: NewSQLBuilder().Insert("employee", "id", "email").Values(1),
			wantErr: "1 values for 2 columns",
		},
		{
			name:    "no table",
			builder: NewSQLBuilder().Select("id"),
			wantErr: "no table given",
		},
		{
			name:    "no statement",
			builder: NewSQLBuilder().From("employee"),
			wantErr: "no statement kind given",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.builder.BuildSafe()
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
