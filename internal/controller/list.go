package controller

import (
	"context"

	"github.com/locvowork/employee_directory/internal/query"
)

// EmptyResultMessage is shown when nothing matches the query.
const EmptyResultMessage = "No employees found matching your criteria."

// ListView is everything a surface needs to draw the list.
type ListView struct {
	Result    query.Result
	Params    query.Params
	PageLinks []int
}

// View derives the current page from the store.
func (c *Controller) View(ctx context.Context) ListView {
	c.mu.Lock()
	p := c.state.Params()
	c.mu.Unlock()

	res := c.dir.List(ctx, p)
	return ListView{
		Result:    res,
		Params:    p,
		PageLinks: query.PageLinks(res.Page, res.TotalPages, query.MaxPageLinks),
	}
}

// Params returns the current query parameters.
func (c *Controller) Params() query.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Params()
}

func (c *Controller) Search(term string) {
	c.withState(func(s *query.State) { s.SetSearch(term) })
}

func (c *Controller) Filter(f query.Filters) {
	c.withState(func(s *query.State) { s.SetFilters(f) })
}

func (c *Controller) ClearFilters() {
	c.withState(func(s *query.State) { s.ClearFilters() })
}

func (c *Controller) Sort(key query.SortKey, order query.SortOrder) {
	c.withState(func(s *query.State) { s.SetSort(key, order) })
}

func (c *Controller) ToggleSort(key query.SortKey) {
	c.withState(func(s *query.State) { s.ToggleSort(key) })
}

func (c *Controller) ChangePage(n int) {
	c.withState(func(s *query.State) { s.SetPage(n) })
}

func (c *Controller) ChangePageSize(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.SetPageSize(n)
}

func (c *Controller) withState(fn func(s *query.State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.state)
}
