package repository

// Pagination bounds applied to every paginated listing.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// Page holds normalized pagination parameters.
type Page struct {
	Number int
	Limit  int
}

// NormalizePage clamps raw page/limit values into their valid ranges.
// Out-of-range values are clamped silently rather than rejected: page
// is forced to >= 1 and limit into [1,50]. Zero values take defaults.
func NormalizePage(page, limit int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	} else if limit < 1 {
		limit = 1
	} else if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: page, Limit: limit}
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages returns ceil(total/limit) for the page size.
func (p Page) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
