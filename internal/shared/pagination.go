package shared

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListQuery carries pagination and search parameters for list endpoints.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Normalize clamps page and limit to sane bounds. Page is 1-based.
func (q ListQuery) Normalize() ListQuery {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	return q
}

// Bounds returns the half-open slice window [start, end) for a collection of
// the given size.
func (q ListQuery) Bounds(total int) (int, int) {
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return start, end
}

// PageEnvelope is the wire shape for paginated listings.
type PageEnvelope struct {
	Data  any `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
