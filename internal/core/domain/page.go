package domain

// Page is one page of homogeneous resource items plus the total item count
// the server reports for the whole query.
type Page[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// EmptyPage returns a page with no items and a zero total.
func EmptyPage[T any]() Page[T] {
	return Page[T]{Data: []T{}}
}

// TotalPages returns how many pages of pageSize items are needed to
// exhaust total items.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ListQuery describes one page request against a paginated endpoint.
// Page is 0-based.
type ListQuery struct {
	Page      int   `schema:"page"`
	Count     int   `schema:"count"`
	Ascending *bool `schema:"ascending,omitempty"`
}

// Asc returns a pointer to v for ListQuery.Ascending.
func Asc(v bool) *bool {
	return &v
}
