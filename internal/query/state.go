package query

import "fmt"

// State holds the query parameters a surface edits. Search, filter and page-size changes
// send the user back to the first page; sort changes keep the current page.
type State struct {
	params Params
}

// NewState returns a State with DefaultParams.
func NewState() *State {
	return &State{params: DefaultParams()}
}

// NewStateWithPageSize returns a State using pageSize, which must be one of PageSizes.
func NewStateWithPageSize(pageSize int) (*State, error) {
	s := NewState()
	if err := s.SetPageSize(pageSize); err != nil {
		return nil, err
	}
	return s, nil
}

// Params returns a copy of the current parameters.
func (s *State) Params() Params {
	return s.params
}

func (s *State) SetSearch(term string) {
	s.params.Search = term
	s.params.Page = 1
}

func (s *State) SetFilters(f Filters) {
	s.params.Filters = f.Normalize()
	s.params.Page = 1
}

// ClearFilters removes every filter.
func (s *State) ClearFilters() {
	s.SetFilters(Filters{})
}

func (s *State) SetSort(key SortKey, order SortOrder) {
	s.params.SortKey = key
	s.params.SortOrder = order
}

// ToggleSort flips the direction when key is already the sort key and otherwise sorts
// ascending by key.
func (s *State) ToggleSort(key SortKey) {
	if s.params.SortKey == key {
		s.SetSort(key, s.params.SortOrder.Reverse())
		return
	}
	s.SetSort(key, Ascending)
}

// SetPage moves to page n; values below 1 select the first page.
func (s *State) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.params.Page = n
}

func (s *State) SetPageSize(n int) error {
	if !ValidPageSize(n) {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	s.params.PageSize = n
	s.params.Page = 1
	return nil
}

// ClampPage pulls the current page back to the last page after the result shrank.
func (s *State) ClampPage(totalPages int) {
	if totalPages < 1 {
		totalPages = 1
	}
	if s.params.Page > totalPages {
		s.params.Page = totalPages
	}
}
