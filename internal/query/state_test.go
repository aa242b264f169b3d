package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_ResetsPage(t *testing.T) {
	tests := []struct {
		name   string
		change func(s *State)
		want   int
	}{
		{"search", func(s *State) { s.SetSearch("ann") }, 1},
		{"filters", func(s *State) { s.SetFilters(Filters{Role: "Manager"}) }, 1},
		{"clear filters", func(s *State) { s.ClearFilters() }, 1},
		{"page size", func(s *State) { require.NoError(t, s.SetPageSize(25)) }, 1},
		{"sort keeps page", func(s *State) { s.SetSort(SortDepartment, Descending) }, 4},
		{"toggle keeps page", func(s *State) { s.ToggleSort(SortFirstName) }, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.SetPage(4)
			tt.change(s)
			assert.Equal(t, tt.want, s.Params().Page)
		})
	}
}

func TestState_SetFiltersNormalizesAll(t *testing.T) {
	s := NewState()
	s.SetFilters(Filters{Department: "All", Role: "all", FirstName: "all"})

	f := s.Params().Filters
	assert.Empty(t, f.Department)
	assert.Empty(t, f.Role)
	// Free text is taken literally.
	assert.Equal(t, "all", f.FirstName)
}

func TestState_ToggleSort(t *testing.T) {
	s := NewState()

	s.ToggleSort(SortFirstName)
	assert.Equal(t, SortFirstName, s.Params().SortKey)
	assert.Equal(t, Ascending, s.Params().SortOrder)

	s.ToggleSort(SortFirstName)
	assert.Equal(t, Descending, s.Params().SortOrder)

	s.ToggleSort(SortDepartment)
	assert.Equal(t, SortDepartment, s.Params().SortKey)
	assert.Equal(t, Ascending, s.Params().SortOrder)
}

func TestState_PageSize(t *testing.T) {
	s, err := NewStateWithPageSize(50)
	require.NoError(t, err)
	assert.Equal(t, 50, s.Params().PageSize)

	_, err = NewStateWithPageSize(7)
	assert.ErrorIs(t, err, ErrInvalidPageSize)

	assert.ErrorIs(t, s.SetPageSize(0), ErrInvalidPageSize)
	assert.Equal(t, 50, s.Params().PageSize)
}

func TestState_SetPageAndClamp(t *testing.T) {
	s := NewState()

	s.SetPage(-3)
	assert.Equal(t, 1, s.Params().Page)

	s.SetPage(6)
	s.ClampPage(4)
	assert.Equal(t, 4, s.Params().Page)

	s.ClampPage(9)
	assert.Equal(t, 4, s.Params().Page)

	s.ClampPage(0)
	assert.Equal(t, 1, s.Params().Page)
}

func TestState_ParamsIsACopy(t *testing.T) {
	s := NewState()
	p := s.Params()
	p.Search = "changed"
	assert.Empty(t, s.Params().Search)
}

func TestParseSortKey(t *testing.T) {
	for in, want := range map[string]SortKey{
		"":           SortNone,
		"firstName":  SortFirstName,
		"department": SortDepartment,
	} {
		got, err := ParseSortKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseSortKey("salary")
	assert.Error(t, err)
}

func TestParseSortOrder(t *testing.T) {
	o, err := ParseSortOrder("DESC")
	require.NoError(t, err)
	assert.Equal(t, Descending, o)

	o, err = ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, Ascending, o)

	_, err = ParseSortOrder("sideways")
	assert.Error(t, err)
}
