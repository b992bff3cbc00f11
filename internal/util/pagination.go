package util

// Window clamps a page/size pair and returns the matching offset and limit.
// Page numbering starts at 1; size defaults to 10 and is capped at 100.
func Window(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	return (page - 1) * size, size
}

type Pagination struct {
	Total int64 `json:"total"`
	Limit int   `json:"limit"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

type PaginationResponse[T any] struct {
	Content    []T        `json:"content"`
	Pagination Pagination `json:"pagination"`
}

func NewPaginationResponse[T any](content []T, total int64, page, size int) PaginationResponse[T] {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	pages := int((total + int64(size) - 1) / int64(size))
	return PaginationResponse[T]{
		Content: content,
		Pagination: Pagination{
			Total: total,
			Limit: size,
			Page:  page,
			Pages: pages,
		},
	}
}
