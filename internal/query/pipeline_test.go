package query

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_directory/internal/domain"
)

func emp(id int, first, last, email string, dept domain.Department, role domain.Role) domain.Employee {
	return domain.Employee{ID: id, FirstName: first, LastName: last, Email: email, Department: dept, Role: role}
}

func fixture() []domain.Employee {
	return []domain.Employee{
		emp(1, "John", "Smith", "john.smith@company.com", domain.DepartmentIT, domain.RoleDeveloper),
		emp(2, "Sarah", "Johnson", "sarah.j@company.com", domain.DepartmentHR, domain.RoleManager),
		emp(3, "mike", "Brown", "mike.brown@company.com", domain.DepartmentFinance, domain.RoleAnalyst),
		emp(4, "Emily", "Davis", "emily.davis@company.com", domain.DepartmentIT, domain.RoleManager),
		emp(5, "David", "Wilson", "dwilson@company.com", domain.DepartmentMarketing, domain.RoleSpecialist),
		emp(6, "Lisa", "Anderson", "lisa.a@company.com", domain.DepartmentOperations, domain.RoleCoordinator),
		emp(7, "Mike", "Taylor", "mtaylor@company.com", domain.DepartmentIT, domain.RoleDeveloper),
	}
}

func ids(records []domain.Employee) []int {
	out := make([]int, len(records))
	for i, e := range records {
		out[i] = e.ID
	}
	return out
}

func randomRecords(r *rand.Rand, n int) []domain.Employee {
	names := []string{"Ann", "anna", "Bob", "bob", "Carl", "Dana", "Émile", "eve", "Zed", "Mo"}
	out := make([]domain.Employee, n)
	for i := range out {
		first := names[r.Intn(len(names))]
		last := names[r.Intn(len(names))]
		out[i] = emp(i+1, first, last,
			fmt.Sprintf("%s.%d@corp.io", strings.ToLower(last), i),
			domain.Departments[r.Intn(len(domain.Departments))],
			domain.Roles[r.Intn(len(domain.Roles))])
	}
	return out
}

func TestSearch(t *testing.T) {
	records := fixture()

	tests := []struct {
		name string
		term string
		want []int
	}{
		{"empty term keeps everything", "", []int{1, 2, 3, 4, 5, 6, 7}},
		{"first name any case", "MIKE", []int{3, 7}},
		{"last name substring", "john", []int{1, 2}},
		{"email substring", "dwilson@", []int{5}},
		{"no match", "zzz", []int{}},
		{"term is not trimmed", " smith", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Search(records, tt.term)))
		})
	}
}

func TestSearch_Property(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	records := randomRecords(r, 200)
	for _, term := range []string{"an", "BOB", "corp", "e", ".1", "émile"} {
		for _, e := range Search(records, term) {
			lower := strings.ToLower(term)
			hit := strings.Contains(strings.ToLower(e.FirstName), lower) ||
				strings.Contains(strings.ToLower(e.LastName), lower) ||
				strings.Contains(strings.ToLower(e.Email), lower)
			assert.True(t, hit, "record %d does not contain %q", e.ID, term)
		}
	}
}

func TestFilter(t *testing.T) {
	records := fixture()

	tests := []struct {
		name    string
		filters Filters
		want    []int
	}{
		{"no filters", Filters{}, []int{1, 2, 3, 4, 5, 6, 7}},
		{"department exact", Filters{Department: "IT"}, []int{1, 4, 7}},
		{"department is case sensitive", Filters{Department: "it"}, []int{}},
		{"role exact", Filters{Role: "Manager"}, []int{2, 4}},
		{"first name substring", Filters{FirstName: "MI"}, []int{3, 4, 7}},
		{"conjunction", Filters{Department: "IT", Role: "Developer", FirstName: "mi"}, []int{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(records, tt.filters)))
		})
	}
}

func TestFilter_Property(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	records := randomRecords(r, 300)
	for i := 0; i < 50; i++ {
		f := Filters{}
		if r.Intn(2) == 0 {
			f.Department = string(domain.Departments[r.Intn(len(domain.Departments))])
		}
		if r.Intn(2) == 0 {
			f.Role = string(domain.Roles[r.Intn(len(domain.Roles))])
		}
		if r.Intn(2) == 0 {
			f.FirstName = []string{"a", "B", "o", "mi"}[r.Intn(4)]
		}
		for _, e := range Filter(records, f) {
			if f.Department != "" {
				assert.Equal(t, f.Department, string(e.Department))
			}
			if f.Role != "" {
				assert.Equal(t, f.Role, string(e.Role))
			}
			if f.FirstName != "" {
				assert.Contains(t, strings.ToLower(e.FirstName), strings.ToLower(f.FirstName))
			}
		}
	}
}

func TestSort(t *testing.T) {
	records := fixture()

	t.Run("none keeps insertion order", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, ids(Sort(records, SortNone, Descending)))
	})

	t.Run("first name ascending is case insensitive and stable", func(t *testing.T) {
		// "mike"(3) and "Mike"(7) are equal and keep store order.
		assert.Equal(t, []int{5, 4, 1, 6, 3, 7, 2}, ids(Sort(records, SortFirstName, Ascending)))
	})

	t.Run("first name descending keeps ties in store order", func(t *testing.T) {
		assert.Equal(t, []int{2, 3, 7, 6, 1, 4, 5}, ids(Sort(records, SortFirstName, Descending)))
	})

	t.Run("department ascending", func(t *testing.T) {
		assert.Equal(t, []int{3, 2, 1, 4, 7, 5, 6}, ids(Sort(records, SortDepartment, Ascending)))
	})

	t.Run("locale aware ordering", func(t *testing.T) {
		in := []domain.Employee{
			emp(1, "Zoe", "", "", "", ""),
			emp(2, "Émile", "", "", "", ""),
			emp(3, "adam", "", "", "", ""),
		}
		assert.Equal(t, []int{3, 2, 1}, ids(Sort(in, SortFirstName, Ascending)))
	})

	t.Run("input is not modified", func(t *testing.T) {
		before := ids(records)
		Sort(records, SortFirstName, Descending)
		assert.Equal(t, before, ids(records))
	})
}

func TestSort_StableProperty(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	records := randomRecords(r, 250)
	for _, order := range []SortOrder{Ascending, Descending} {
		sorted := Sort(records, SortDepartment, order)
		require.Len(t, sorted, len(records))
		for i := 1; i < len(sorted); i++ {
			if sorted[i-1].Department == sorted[i].Department {
				// ids were assigned in store order, so ties must stay increasing.
				assert.Less(t, sorted[i-1].ID, sorted[i].ID)
			}
		}
	}
}

func TestPaginate(t *testing.T) {
	records := randomRecords(rand.New(rand.NewSource(1)), 23)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(Paginate(records, 1, 10)))
	assert.Equal(t, []int{21, 22, 23}, ids(Paginate(records, 3, 10)))
	assert.Empty(t, Paginate(records, 4, 10))
	assert.NotNil(t, Paginate(records, 4, 10))
	assert.Empty(t, Paginate(records, 0, 10))
	assert.Empty(t, Paginate(nil, 1, 10))
	assert.Equal(t, ids(records), ids(Paginate(records, 1, math.MaxInt)))

	for _, page := range []int{math.MaxInt, math.MaxInt / 5, math.MaxInt/10 + 2} {
		assert.NotPanics(t, func() {
			assert.Empty(t, Paginate(records, page, 10), "page=%d", page)
		})
	}
}

func TestRun_HugePage(t *testing.T) {
	for _, page := range []int{math.MaxInt, math.MaxInt / 5, math.MaxInt/10 + 2} {
		var res Result
		require.NotPanics(t, func() {
			res = Run(fixture(), Params{Page: page, PageSize: 10})
		})
		assert.Empty(t, res.Items)
		assert.Equal(t, page, res.Page)
		assert.Equal(t, len(fixture()), res.TotalMatching)
		from, to := res.Window()
		assert.Zero(t, from)
		assert.Zero(t, to)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct{ total, size, want int }{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 25, 4},
		{101, 100, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestRun(t *testing.T) {
	records := fixture()

	t.Run("all stages", func(t *testing.T) {
		p := DefaultParams()
		p.Search = "i"
		p.Filters = Filters{Department: "IT"}
		p.SortKey = SortFirstName
		p.SortOrder = Descending
		p.PageSize = 10

		res := Run(records, p)
		assert.Equal(t, []int{7, 1, 4}, ids(res.Items))
		assert.Equal(t, 3, res.TotalMatching)
		assert.Equal(t, 1, res.TotalPages)
	})

	t.Run("empty result has zero pages", func(t *testing.T) {
		p := DefaultParams()
		p.Search = "nobody"
		res := Run(records, p)
		assert.Equal(t, 0, res.TotalMatching)
		assert.Equal(t, 0, res.TotalPages)
		assert.Empty(t, res.Items)
	})

	t.Run("page beyond range is empty, not an error", func(t *testing.T) {
		p := DefaultParams()
		p.Page = 9
		res := Run(records, p)
		assert.Empty(t, res.Items)
		assert.Equal(t, 7, res.TotalMatching)
		assert.Equal(t, 1, res.TotalPages)
	})

	t.Run("deterministic", func(t *testing.T) {
		p := DefaultParams()
		p.SortKey = SortDepartment
		assert.Equal(t, Run(records, p), Run(records, p))
	})

	t.Run("total pages property", func(t *testing.T) {
		r := rand.New(rand.NewSource(5))
		for i := 0; i < 40; i++ {
			recs := randomRecords(r, r.Intn(120))
			p := DefaultParams()
			p.PageSize = PageSizes[r.Intn(len(PageSizes))]
			p.Search = []string{"", "a", "zz", "bob"}[r.Intn(4)]
			res := Run(recs, p)
			if res.TotalMatching == 0 {
				assert.Equal(t, 0, res.TotalPages)
				continue
			}
			want := res.TotalMatching / p.PageSize
			if res.TotalMatching%p.PageSize != 0 {
				want++
			}
			assert.Equal(t, want, res.TotalPages)
		}
	})

	t.Run("added HR record is found by department filter", func(t *testing.T) {
		store := []domain.Employee{emp(1, "Ian", "T", "ian@x.io", domain.DepartmentIT, domain.RoleDeveloper)}
		added := emp(2, "Hana", "R", "hana@x.io", domain.DepartmentHR, domain.RoleManager)
		store = append(store, added)

		p := DefaultParams()
		p.Filters = Filters{Department: "HR"}
		res := Run(store, p)
		assert.Equal(t, []domain.Employee{added}, res.Items)
	})
}

func TestResultWindow(t *testing.T) {
	records := randomRecords(rand.New(rand.NewSource(2)), 42)

	p := DefaultParams()
	p.Page = 2
	from, to := Run(records, p).Window()
	assert.Equal(t, 11, from)
	assert.Equal(t, 20, to)

	p.Page = 5
	res := Run(records, p)
	from, to = res.Window()
	assert.Equal(t, 41, from)
	assert.Equal(t, 42, to)
	assert.True(t, res.HasPrevious())
	assert.False(t, res.HasNext())

	p.Search = "nothing-matches"
	from, to = Run(records, p).Window()
	assert.Zero(t, from)
	assert.Zero(t, to)
}

func TestPageLinks(t *testing.T) {
	assert.Nil(t, PageLinks(1, 0, MaxPageLinks))
	assert.Equal(t, []int{1, 2, 3}, PageLinks(1, 3, MaxPageLinks))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageLinks(1, 10, MaxPageLinks))
	assert.Equal(t, []int{3, 4, 5, 6, 7}, PageLinks(5, 10, MaxPageLinks))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, PageLinks(10, 10, MaxPageLinks))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, PageLinks(9, 10, MaxPageLinks))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, PageLinks(math.MaxInt, 10, MaxPageLinks))
}
