package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/locvowork/employee_directory/internal/domain"
)

var _ domain.EmployeeRepository = (*employeeRepository)(nil)

// employeeRepository keeps the authoritative ordered collection of employees in memory.
type employeeRepository struct {
	mu      sync.RWMutex
	records []domain.Employee
}

// NewEmployeeRepository creates a new instance of EmployeeRepository seeded with records.
// Seed records must carry unique positive ids.
func NewEmployeeRepository(ctx context.Context, seed []domain.Employee) (domain.EmployeeRepository, error) {
	r := &employeeRepository{}
	if err := r.Load(ctx, seed); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *employeeRepository) Add(_ context.Context, in domain.EmployeeInput) (domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := in.WithID(r.nextID())
	r.records = append(r.records, e)
	return e, nil
}

func (r *employeeRepository) Update(_ context.Context, id int, in domain.EmployeeInput) (domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Employee{}, fmt.Errorf("update employee %d: %w", id, domain.ErrNotFound)
	}
	r.records[i] = in.WithID(id)
	return r.records[i], nil
}

func (r *employeeRepository) Remove(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove employee %d: %w", id, domain.ErrNotFound)
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	return nil
}

func (r *employeeRepository) Get(_ context.Context, id int) (domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Employee{}, fmt.Errorf("get employee %d: %w", id, domain.ErrNotFound)
	}
	return r.records[i], nil
}

func (r *employeeRepository) Snapshot(_ context.Context) []domain.Employee {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Employee, len(r.records))
	copy(out, r.records)
	return out
}

func (r *employeeRepository) Load(_ context.Context, records []domain.Employee) error {
	seen := make(map[int]struct{}, len(records))
	for _, e := range records {
		if e.ID <= 0 {
			return fmt.Errorf("%w: id %d is not positive", domain.ErrInvalidSeed, e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", domain.ErrInvalidSeed, e.ID)
		}
		seen[e.ID] = struct{}{}
	}

	loaded := make([]domain.Employee, len(records))
	copy(loaded, records)

	r.mu.Lock()
	r.records = loaded
	r.mu.Unlock()
	return nil
}

func (r *employeeRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// nextID is max(existing ids)+1, or 1 for an empty store. Caller holds the write lock.
func (r *employeeRepository) nextID() int {
	highest := 0
	for _, e := range r.records {
		if e.ID > highest {
			highest = e.ID
		}
	}
	return highest + 1
}

func (r *employeeRepository) indexOf(id int) int {
	for i, e := range r.records {
		if e.ID == id {
			return i
		}
	}
	return -1
}
