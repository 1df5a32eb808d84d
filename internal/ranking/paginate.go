package ranking

import "github.com/hyperjump/pakar/internal/models"

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 24

// Page is one window over a ranked list.
type Page struct {
	Items       []*models.Recommendation
	TotalItems  int
	TotalPages  int
	CurrentPage int
}

// Paginate returns the window [(page-1)*size, page*size) of items. Pages below 1 clamp to 1;
// pages past the end clamp to the last page (1 when there are no items).
func Paginate(items []*models.Recommendation, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + size - 1) / size
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = max(totalPages, 1)
	}
	start := min((page-1)*size, total)
	end := min(start+size, total)
	return Page{
		Items:       items[start:end],
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
