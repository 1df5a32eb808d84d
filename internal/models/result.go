package models

// EmptyReason names the filter stage that left no candidates.
type EmptyReason string

const (
	EmptyReasonBudget       EmptyReason = "budget"
	EmptyReasonSearch       EmptyReason = "search"
	EmptyReasonBrand        EmptyReason = "brand"
	EmptyReasonRequirements EmptyReason = "requirements"
)

// ResultPage is one page of ranked recommendations plus pagination metadata.
// A page with TotalItems == 0 is the empty result: no matches, not an error.
type ResultPage struct {
	Items       []*Recommendation `json:"items"`
	TotalItems  int               `json:"total_items"`
	TotalPages  int               `json:"total_pages"`
	CurrentPage int               `json:"current_page"`
	PageSize    int               `json:"page_size"`
	Sort        SortOption        `json:"sort"`
	// Advisory is a non-blocking hint, e.g. a budget below the category's usual minimum.
	Advisory    string      `json:"advisory,omitempty"`
	EmptyReason EmptyReason `json:"empty_reason,omitempty"`
	// Suggestions holds product names close to the search term when the search stage matched nothing.
	Suggestions []string `json:"suggestions,omitempty"`
	// DidYouMean is the search term with each unknown word replaced by the closest indexed word.
	DidYouMean string `json:"did_you_mean,omitempty"`
	CatalogID   string   `json:"catalog_id"`
	QueryTime   int64    `json:"query_time_ms"`
}

// IsEmpty reports whether the page represents "no matches".
func (p *ResultPage) IsEmpty() bool {
	return p.TotalItems == 0
}
