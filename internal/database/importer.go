package database

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/validation"
	"github.com/locvowork/employee_directory/pkg/dataflow"
)

// Rejection explains why one seed record was not imported.
type Rejection struct {
	// Index is the position of the record in the source, starting at 0.
	Index    int
	Employee domain.Employee
	Err      error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("record %d (id %d): %v", r.Index, r.Employee.ID, r.Err)
}

func (r Rejection) Unwrap() error {
	return r.Err
}

// Report is the outcome of an import: the accepted records in source order and the
// rejected ones, also in source order.
type Report struct {
	Valid    []domain.Employee
	Rejected []Rejection
}

// Importer checks seed records before they reach the store. Records are validated in
// parallel; ids must be positive and unique, the first occurrence wins.
type Importer struct {
	workers int
}

func NewImporter(workers int) *Importer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Importer{workers: workers}
}

type indexed struct {
	index int
	e     domain.Employee
	err   error
}

func (im *Importer) Import(ctx context.Context, records []domain.Employee) (Report, error) {
	items := make([]indexed, len(records))
	for i, e := range records {
		items[i] = indexed{index: i, e: e}
	}

	checked := dataflow.Map(ctx, dataflow.From(ctx, items...), func(it indexed) (indexed, error) {
		if it.e.ID <= 0 {
			it.err = fmt.Errorf("%w: id must be positive", domain.ErrInvalidSeed)
			return it, nil
		}
		if errs := validation.Validate(it.e.Input()); len(errs) > 0 {
			it.err = errs
		}
		return it, nil
	}, dataflow.WithWorkers(im.workers), dataflow.WithBufferSize(im.workers))

	results, err := dataflow.Collect(ctx, checked)
	if err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	var rep Report
	seen := make(map[int]bool, len(results))
	for _, r := range results {
		if r.err == nil && seen[r.e.ID] {
			r.err = fmt.Errorf("%w: duplicate id %d", domain.ErrInvalidSeed, r.e.ID)
		}
		if r.err != nil {
			rep.Rejected = append(rep.Rejected, Rejection{Index: r.index, Employee: r.e, Err: r.err})
			continue
		}
		seen[r.e.ID] = true
		rep.Valid = append(rep.Valid, r.e)
	}
	return rep, nil
}

// ImportFrom loads src and checks its records.
func (im *Importer) ImportFrom(ctx context.Context, src Source) (Report, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load seed: %w", err)
	}
	return im.Import(ctx, records)
}
