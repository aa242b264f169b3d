package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_directory/internal/domain"
)

func seedRecords() []domain.Employee {
	return []domain.Employee{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Department: domain.DepartmentIT, Role: domain.RoleDeveloper},
		{ID: 7, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Department: domain.DepartmentIT, Role: domain.RoleManager},
		{ID: 3, FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Department: domain.DepartmentFinance, Role: domain.RoleAnalyst},
	}
}

func newRepo(t *testing.T, seed []domain.Employee) domain.EmployeeRepository {
	t.Helper()
	repo, err := NewEmployeeRepository(context.Background(), seed)
	require.NoError(t, err)
	return repo
}

func TestEmployeeRepository_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns max id plus one and appends", func(t *testing.T) {
		repo := newRepo(t, seedRecords())
		in := domain.EmployeeInput{FirstName: "Linus", LastName: "Torvalds", Email: "linus@example.com", Department: "IT", Role: "Developer"}

		created, err := repo.Add(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 8, created.ID)
		assert.Equal(t, in.WithID(8), created)

		snap := repo.Snapshot(ctx)
		require.Len(t, snap, 4)
		assert.Equal(t, created, snap[3])

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("first id on empty store is one", func(t *testing.T) {
		repo := newRepo(t, nil)
		created, err := repo.Add(ctx, domain.EmployeeInput{FirstName: "A"})
		require.NoError(t, err)
		assert.Equal(t, 1, created.ID)
	})

	t.Run("new id exceeds every previous id", func(t *testing.T) {
		repo := newRepo(t, seedRecords())
		for i := 0; i < 5; i++ {
			before := repo.Snapshot(ctx)
			created, err := repo.Add(ctx, domain.EmployeeInput{FirstName: "X"})
			require.NoError(t, err)
			for _, e := range before {
				assert.Greater(t, created.ID, e.ID)
			}
		}
	})
}

func TestEmployeeRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, seedRecords())

	in := domain.EmployeeInput{FirstName: "Gracie", LastName: "H", Email: "gh@example.com", Department: "HR", Role: "Coordinator"}
	updated, err := repo.Update(ctx, 7, in)
	require.NoError(t, err)
	assert.Equal(t, in.WithID(7), updated)

	snap := repo.Snapshot(ctx)
	require.Len(t, snap, 3)
	assert.Equal(t, updated, snap[1], "position is preserved")

	_, err = repo.Update(ctx, 42, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeRepository_Remove(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, seedRecords())

	require.NoError(t, repo.Remove(ctx, 7))
	assert.Equal(t, 2, repo.Count(ctx))
	assert.ErrorIs(t, repo.Remove(ctx, 7), domain.ErrNotFound)

	_, err := repo.Get(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ids := []int{}
	for _, e := range repo.Snapshot(ctx) {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int{1, 3}, ids)
}

func TestEmployeeRepository_SnapshotIsCopy(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, seedRecords())

	snap := repo.Snapshot(ctx)
	snap[0].FirstName = "mutated"

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
}

func TestEmployeeRepository_Load(t *testing.T) {
	ctx := context.Background()

	_, err := NewEmployeeRepository(ctx, []domain.Employee{{ID: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidSeed)

	_, err = NewEmployeeRepository(ctx, []domain.Employee{{ID: 2}, {ID: 2}})
	assert.ErrorIs(t, err, domain.ErrInvalidSeed)

	repo := newRepo(t, seedRecords())
	require.NoError(t, repo.Load(ctx, []domain.Employee{{ID: 10, FirstName: "Solo"}}))
	assert.Equal(t, 1, repo.Count(ctx))

	created, err := repo.Add(ctx, domain.EmployeeInput{FirstName: "Next"})
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)
}
