package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/locvowork/employee_directory/internal/domain"
)

// ErrInvalidPageSize is returned when a page size outside PageSizes is requested.
var ErrInvalidPageSize = errors.New("invalid page size")

// PageSizes are the page sizes a surface may offer.
var PageSizes = []int{10, 25, 50, 100}

// DefaultPageSize is used until the user picks another size.
const DefaultPageSize = 10

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	for _, size := range PageSizes {
		if size == n {
			return true
		}
	}
	return false
}

// SortKey names a sortable employee field.
type SortKey int

const (
	SortNone SortKey = iota
	SortFirstName
	SortDepartment
)

// sortAccessors maps each sortable field to the value it is ordered by.
var sortAccessors = map[SortKey]func(domain.Employee) string{
	SortFirstName:  func(e domain.Employee) string { return e.FirstName },
	SortDepartment: func(e domain.Employee) string { return string(e.Department) },
}

func (k SortKey) String() string {
	switch k {
	case SortFirstName:
		return "firstName"
	case SortDepartment:
		return "department"
	default:
		return ""
	}
}

// ParseSortKey accepts the wire names "firstName" and "department"; empty means unsorted.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.TrimSpace(s) {
	case "":
		return SortNone, nil
	case "firstName":
		return SortFirstName, nil
	case "department":
		return SortDepartment, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

func (k SortKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *SortKey) UnmarshalText(b []byte) error {
	parsed, err := ParseSortKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// SortOrder is the sort direction.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (o SortOrder) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Reverse returns the opposite direction.
func (o SortOrder) Reverse() SortOrder {
	if o == Descending {
		return Ascending
	}
	return Descending
}

func (o SortOrder) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *SortOrder) UnmarshalText(b []byte) error {
	parsed, err := ParseSortOrder(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseSortOrder accepts "asc" and "desc"; empty means ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort order %q", s)
}

// Filters holds the per-field filter values. The empty string means "no filter".
type Filters struct {
	Department string `json:"department"`
	Role       string `json:"role"`
	FirstName  string `json:"firstName"`
}

// Active reports whether any filter is set.
func (f Filters) Active() bool {
	return f.Department != "" || f.Role != "" || f.FirstName != ""
}

// NormalizeFilterValue maps the "all" selection some widgets emit onto the empty
// no-filter sentinel.
func NormalizeFilterValue(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), "all") {
		return ""
	}
	return v
}

// Normalize applies NormalizeFilterValue to the enumerated filters.
func (f Filters) Normalize() Filters {
	f.Department = NormalizeFilterValue(f.Department)
	f.Role = NormalizeFilterValue(f.Role)
	return f
}

// Params are the inputs of a derivation.
type Params struct {
	Search    string    `json:"search"`
	Filters   Filters   `json:"filters"`
	SortKey   SortKey   `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
	Page      int       `json:"page"`
	PageSize  int       `json:"pageSize"`
}

// DefaultParams returns unfiltered, unsorted parameters on the first page.
func DefaultParams() Params {
	return Params{
		SortOrder: Ascending,
		Page:      1,
		PageSize:  DefaultPageSize,
	}
}
