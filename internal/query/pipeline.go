package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/locvowork/employee_directory/internal/domain"
)

// Result is one derived page of the directory.
type Result struct {
	Items         []domain.Employee `json:"items"`
	TotalMatching int               `json:"totalMatching"`
	TotalPages    int               `json:"totalPages"`
	Page          int               `json:"page"`
	PageSize      int               `json:"pageSize"`
}

// Run derives the page described by p from records. It never modifies records and holds
// no state between calls, so equal inputs always produce equal results.
func Run(records []domain.Employee, p Params) Result {
	matched := Match(records, p)

	page, size := p.Page, p.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	return Result{
		Items:         Paginate(matched, page, size),
		TotalMatching: len(matched),
		TotalPages:    TotalPages(len(matched), size),
		Page:          page,
		PageSize:      size,
	}
}

// Match runs the search, filter and sort stages and returns every matching record.
// Exports use it to get the full ordered result without pagination.
func Match(records []domain.Employee, p Params) []domain.Employee {
	out := Search(records, p.Search)
	out = Filter(out, p.Filters)
	return Sort(out, p.SortKey, p.SortOrder)
}

// Search keeps records whose first name, last name or email contains term, ignoring case.
// The result is always a new slice.
func Search(records []domain.Employee, term string) []domain.Employee {
	if term == "" {
		return append([]domain.Employee(nil), records...)
	}

	needle := strings.ToLower(term)
	out := make([]domain.Employee, 0, len(records))
	for _, e := range records {
		if containsFold(e.FirstName, needle) ||
			containsFold(e.LastName, needle) ||
			containsFold(e.Email, needle) {
			out = append(out, e)
		}
	}
	return out
}

// Filter keeps records that satisfy every active filter. Department and role match
// exactly; the first-name filter is a case-insensitive substring match.
func Filter(records []domain.Employee, f Filters) []domain.Employee {
	if !f.Active() {
		return append([]domain.Employee(nil), records...)
	}

	firstName := strings.ToLower(f.FirstName)
	out := make([]domain.Employee, 0, len(records))
	for _, e := range records {
		if f.Department != "" && string(e.Department) != f.Department {
			continue
		}
		if f.Role != "" && string(e.Role) != f.Role {
			continue
		}
		if firstName != "" && !containsFold(e.FirstName, firstName) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Sort orders a copy of records by key. Records that compare equal keep their relative
// order. SortNone returns the records in their original order.
func Sort(records []domain.Employee, key SortKey, order SortOrder) []domain.Employee {
	out := append([]domain.Employee(nil), records...)

	field, ok := sortAccessors[key]
	if !ok {
		return out
	}

	// Collators keep scratch buffers, so each call gets its own.
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		cmp := c.CompareString(strings.ToLower(field(out[i])), strings.ToLower(field(out[j])))
		if order == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// Paginate returns the 1-based page of records. Pages outside the data yield an empty
// slice.
func Paginate(records []domain.Employee, page, size int) []domain.Employee {
	if page < 1 || size < 1 {
		return []domain.Employee{}
	}
	// Compare page counts before multiplying so huge pages cannot overflow start.
	if page-1 >= TotalPages(len(records), size) {
		return []domain.Employee{}
	}
	start := (page - 1) * size
	end := len(records)
	if size < end-start {
		end = start + size
	}
	return append([]domain.Employee(nil), records[start:end]...)
}

// TotalPages is ceil(total/size), and 0 when there is nothing to show.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
