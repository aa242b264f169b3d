package domain

import "context"

// EmployeeRepository defines the record store operations. Implementations own the lifetime
// of every record; readers only ever see copies.
type EmployeeRepository interface {
	Add(ctx context.Context, in EmployeeInput) (Employee, error)
	Update(ctx context.Context, id int, in EmployeeInput) (Employee, error)
	Remove(ctx context.Context, id int) error
	Get(ctx context.Context, id int) (Employee, error)

	// Snapshot returns a copy of every record in insertion order.
	Snapshot(ctx context.Context) []Employee
	// Load replaces the store contents with a seed snapshot.
	Load(ctx context.Context, records []Employee) error
	Count(ctx context.Context) int
}
