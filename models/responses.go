package models

// Envelope is the generic response wrapper of the backend (ResponseDto).
// Pagination fields are only set by list endpoints.
type Envelope[T any] struct {
	Status        string `json:"status,omitempty"`
	Description   string `json:"description,omitempty"`
	Payload       T      `json:"payload"`
	TotalPages    int    `json:"totalPages,omitempty"`
	TotalElements int64  `json:"totalElements,omitempty"`
	CurrentPage   int    `json:"currentPage,omitempty"`
	PageSize      int    `json:"pageSize,omitempty"`
}

// Pagination extracts the paging fields of the envelope.
func (e Envelope[T]) Pagination() Pagination {
	return Pagination{
		TotalPages:    e.TotalPages,
		TotalElements: e.TotalElements,
		CurrentPage:   e.CurrentPage,
		PageSize:      e.PageSize,
	}
}

// Pagination describes the position of a page in a result set.
// CurrentPage is zero-based.
type Pagination struct {
	TotalPages    int
	TotalElements int64
	CurrentPage   int
	PageSize      int
}

// HasNext reports whether another page follows the current one.
func (p Pagination) HasNext() bool {
	return p.CurrentPage+1 < p.TotalPages
}

// HasPrev reports whether a page precedes the current one.
func (p Pagination) HasPrev() bool {
	return p.CurrentPage > 0
}

// Page is one page of a list result.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}
