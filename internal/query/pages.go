package query

// MaxPageLinks is how many page numbers a pager shows at once.
const MaxPageLinks = 5

// Window returns the 1-based positions of the first and last item on the page, as in
// "Showing 11 to 20 of 42". Both are zero when the page is empty.
func (r Result) Window() (from, to int) {
	if r.TotalMatching == 0 || len(r.Items) == 0 {
		return 0, 0
	}
	from = (r.Page-1)*r.PageSize + 1
	to = from + len(r.Items) - 1
	return from, to
}

// Empty reports whether nothing matched the query.
func (r Result) Empty() bool {
	return r.TotalMatching == 0
}

// HasPrevious reports whether a previous page exists.
func (r Result) HasPrevious() bool {
	return r.Page > 1
}

// HasNext reports whether a next page exists.
func (r Result) HasNext() bool {
	return r.Page < r.TotalPages
}

// PageLinks returns the page numbers to offer, at most max of them, kept centred on
// current where the page range allows.
func PageLinks(current, totalPages, max int) []int {
	if totalPages <= 0 || max <= 0 {
		return nil
	}

	if current > totalPages {
		current = totalPages
	}
	start := current - max/2
	if start < 1 {
		start = 1
	}
	end := start + max - 1
	if end > totalPages {
		end = totalPages
	}
	if end-start+1 < max {
		start = end - max + 1
		if start < 1 {
			start = 1
		}
	}

	links := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		links = append(links, i)
	}
	return links
}
