package pagination

// Default and maximum page sizes for list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page carries the paging metadata returned alongside every list payload.
type Page struct {
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"10"`
	Total      int64 `json:"total" example:"23"`
	TotalPages int   `json:"totalPages" example:"3"`
	HasNext    bool  `json:"hasNext" example:"true"`
	HasPrev    bool  `json:"hasPrev" example:"false"`
}

// Normalize clamps page/limit to sane values, applying the defaults
// when the caller left them unset.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Build computes the paging envelope for a normalized page/limit pair and
// the exact total count. The preview slice length never leaks into Total.
func Build(page, limit int, total int64) Page {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Page{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
}

// Skip returns the document offset for a normalized page/limit pair.
func Skip(page, limit int) int {
	return (page - 1) * limit
}
