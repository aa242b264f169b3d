package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/repository/builder"
)

// EmployeeTable is the default postgres table holding seed records.
const EmployeeTable = "employee"

var employeeColumns = []string{"id", "first_name", "last_name", "email", "department", "role"}

// Config holds the postgres connection settings.
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders cfg as a lib/pq connection string.
func (cfg Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// NewPostgresDB opens a pool and checks that the server answers.
func NewPostgresDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// PostgresSource reads seed records from a postgres table ordered by id.
type PostgresSource struct {
	DB    *sql.DB
	Table string
	// AfterID skips every id up to and including it, so an interrupted read can resume.
	AfterID int
	// Limit caps the number of rows read. Zero reads everything.
	Limit int
}

func (s PostgresSource) table() string {
	if s.Table == "" {
		return EmployeeTable
	}
	return s.Table
}

// SelectQuery returns the statement Load runs.
func (s PostgresSource) SelectQuery() (string, []interface{}) {
	b := builder.NewSQLBuilder().
		Select(employeeColumns...).
		From(s.table())
	if s.AfterID > 0 {
		b.Where("id > ?", s.AfterID)
	}
	return b.OrderBy("id").
		Limit(s.Limit).
		Build()
}

func (s PostgresSource) Load(ctx context.Context) ([]domain.Employee, error) {
	query, args := s.SelectQuery()
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table(), err)
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Department, &e.Role); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table(), err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// PostgresSink writes generated records into a postgres table, skipping ids already present.
type PostgresSink struct {
	DB    *sql.DB
	Table string
}

func (s PostgresSink) Write(ctx context.Context, records []domain.Employee) error {
	if len(records) == 0 {
		return nil
	}
	table := s.Table
	if table == "" {
		table = EmployeeTable
	}

	insert, _, err := builder.NewSQLBuilder().
		Insert(table, employeeColumns...).
		Values(make([]interface{}, len(employeeColumns))...).
		OnConflictDoNothing().
		BuildSafe()
	if err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range records {
		if _, err := stmt.ExecContext(ctx, e.ID, e.FirstName, e.LastName, e.Email, string(e.Department), string(e.Role)); err != nil {
			return fmt.Errorf("insert employee %d: %w", e.ID, err)
		}
	}

	return tx.Commit()
}
