package response

// PageResponse wraps one page of a list endpoint.
type PageResponse[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewPageResponse builds a page. Items is never null in JSON, and a non-positive
// pageSize yields a single page holding everything.
func NewPageResponse[T any](items []T, page, pageSize, total int) PageResponse[T] {
	if items == nil {
		items = make([]T, 0)
	}

	totalPages := 0
	switch {
	case total == 0:
	case pageSize <= 0:
		totalPages = 1
	default:
		totalPages = (total + pageSize - 1) / pageSize
	}

	return PageResponse[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}
