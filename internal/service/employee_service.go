package service

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/locvowork/employee_directory/internal/metrics"
	"github.com/locvowork/employee_directory/internal/query"
	"github.com/locvowork/employee_directory/internal/validation"
	"github.com/locvowork/employee_directory/pkg/simpleexcel"
)

//go:embed templates/employees.yaml
var defaultExportTemplate string

// Section and sheet names used by the export template.
const (
	exportSectionID = "employees"
	querySheetName  = "Query"
)

// EmployeeService applies validation and bookkeeping around the record store and runs the
// query pipeline over store snapshots.
type EmployeeService struct {
	repo           domain.EmployeeRepository
	metrics        *metrics.Recorder
	exportTemplate string
	exportPath     string
}

type Option func(*EmployeeService)

// WithMetrics records derivations and mutations on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *EmployeeService) { s.metrics = rec }
}

// WithExportTemplateFile replaces the embedded export layout with the YAML file at path.
func WithExportTemplateFile(path string) Option {
	return func(s *EmployeeService) { s.exportPath = path }
}

func NewEmployeeService(repo domain.EmployeeRepository, opts ...Option) *EmployeeService {
	s := &EmployeeService{
		repo:           repo,
		exportTemplate: defaultExportTemplate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List derives one page of the directory.
func (s *EmployeeService) List(ctx context.Context, p query.Params) query.Result {
	s.metrics.Derivation()
	res := query.Run(s.repo.Snapshot(ctx), p)
	logger.DebugLog(ctx, "derived page %d/%d with %d of %d records", res.Page, res.TotalPages, len(res.Items), res.TotalMatching)
	return res
}

// Match returns every record matching p, ordered, without pagination.
func (s *EmployeeService) Match(ctx context.Context, p query.Params) []domain.Employee {
	s.metrics.Derivation()
	return query.Match(s.repo.Snapshot(ctx), p)
}

func (s *EmployeeService) Get(ctx context.Context, id int) (domain.Employee, error) {
	return s.repo.Get(ctx, id)
}

func (s *EmployeeService) Count(ctx context.Context) int {
	return s.repo.Count(ctx)
}

// Validate checks in and records every rejected field.
func (s *EmployeeService) Validate(in domain.EmployeeInput) validation.Errors {
	errs := validation.Validate(in)
	for _, field := range validation.Fields {
		if errs.Has(field) {
			s.metrics.ValidationFailed(field)
		}
	}
	return errs
}

// Create validates in and adds it to the store. Invalid input returns validation.Errors.
func (s *EmployeeService) Create(ctx context.Context, in domain.EmployeeInput) (domain.Employee, error) {
	if errs := s.Validate(in); len(errs) > 0 {
		s.metrics.Mutation("add", metrics.ResultInvalid)
		return domain.Employee{}, errs
	}

	e, err := s.repo.Add(ctx, in)
	if err != nil {
		s.metrics.Mutation("add", metrics.ResultError)
		return domain.Employee{}, fmt.Errorf("create employee: %w", err)
	}
	s.metrics.Mutation("add", metrics.ResultOK)
	logger.InfoLog(ctx, "employee %d created", e.ID)
	return e, nil
}

// Update validates in and replaces record id.
func (s *EmployeeService) Update(ctx context.Context, id int, in domain.EmployeeInput) (domain.Employee, error) {
	if errs := s.Validate(in); len(errs) > 0 {
		s.metrics.Mutation("update", metrics.ResultInvalid)
		return domain.Employee{}, errs
	}

	e, err := s.repo.Update(ctx, id, in)
	if err != nil {
		s.metrics.Mutation("update", resultOf(err))
		return domain.Employee{}, err
	}
	s.metrics.Mutation("update", metrics.ResultOK)
	logger.InfoLog(ctx, "employee %d updated", id)
	return e, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		s.metrics.Mutation("delete", resultOf(err))
		return err
	}
	s.metrics.Mutation("delete", metrics.ResultOK)
	logger.InfoLog(ctx, "employee %d deleted", id)
	return nil
}

// ObserveSave records how long a confirmed save took, delay included.
func (s *EmployeeService) ObserveSave(d time.Duration) {
	s.metrics.ObserveSave(d)
}

// PrepareExport builds the workbook for every record matching p and returns it with the
// number of exported records. A second sheet records the query that produced it.
func (s *EmployeeService) PrepareExport(ctx context.Context, p query.Params) (*simpleexcel.DataExporter, int, error) {
	exporter, err := s.newExporter()
	if err != nil {
		return nil, 0, fmt.Errorf("export employees: %w", err)
	}
	exporter.RegisterFormatter(lowercaseFormatter, lowercase)

	rows := s.Match(ctx, p)
	exporter.BindSectionData(exportSectionID, rows)
	exporter.AddSheet(querySheetName).AddSection(&simpleexcel.SectionConfig{
		ShowHeader: true,
		Data:       querySummary(p, len(rows)),
		Columns: []simpleexcel.ColumnConfig{
			{FieldName: "Name", Header: "Parameter", Width: 16},
			{FieldName: "Value", Header: "Value", Width: 24},
		},
	})
	logger.InfoLog(ctx, "exporting %d employees", len(rows))
	return exporter, len(rows), nil
}

// Export writes the PrepareExport workbook to w.
func (s *EmployeeService) Export(ctx context.Context, p query.Params, w io.Writer) error {
	exporter, _, err := s.PrepareExport(ctx, p)
	if err != nil {
		return err
	}
	if err := exporter.ToWriter(w); err != nil {
		return fmt.Errorf("export employees: %w", err)
	}
	return nil
}

func (s *EmployeeService) newExporter() (*simpleexcel.DataExporter, error) {
	if s.exportPath != "" {
		return simpleexcel.NewDataExporterFromYamlFile(s.exportPath)
	}
	return simpleexcel.NewDataExporterFromYamlConfig(s.exportTemplate)
}

// lowercaseFormatter is the formatter name export templates use for email columns.
const lowercaseFormatter = "lowercase"

func lowercase(v interface{}) interface{} {
	if str, ok := v.(string); ok {
		return strings.ToLower(str)
	}
	return v
}

type summaryRow struct {
	Name  string
	Value string
}

func querySummary(p query.Params, total int) []summaryRow {
	orAll := func(v string) string {
		if v == "" {
			return "All"
		}
		return v
	}
	sortBy := "None"
	if p.SortKey != query.SortNone {
		sortBy = p.SortKey.String() + " " + p.SortOrder.String()
	}
	return []summaryRow{
		{"Search", p.Search},
		{"Department", orAll(p.Filters.Department)},
		{"Role", orAll(p.Filters.Role)},
		{"First name", p.Filters.FirstName},
		{"Sort", sortBy},
		{"Matching", fmt.Sprint(total)},
	}
}

func resultOf(err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return metrics.ResultNotFound
	}
	return metrics.ResultError
}
