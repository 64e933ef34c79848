package pagination

// Page is the envelope shared by every list-returning endpoint. All metadata
// is derived from the same three inputs so no caller can hand-build an
// inconsistent envelope.
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalElements int  `json:"total_elements"`
	TotalPages    int  `json:"total_pages"`
	CurrentPage   int  `json:"current_page"`
	PageSize      int  `json:"page_size"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// New builds the envelope for one page of results. size is the requested page
// size and drives total_pages; page_size in the envelope reports the actual
// number of items returned, so a final partial page carries its true count.
// An empty result set has zero pages and counts as the last page.
func New[T any](content []T, totalElements, page, size int) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if size > 0 {
		totalPages = (totalElements + size - 1) / size
	}

	return Page[T]{
		Content:       content,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		CurrentPage:   page,
		PageSize:      len(content),
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

// Offset converts a 0-based page index and size into a slice offset.
func Offset(page, size int) int {
	return page * size
}

// Window cuts one page out of an already ordered slice. An offset past
// the end yields an empty page, never an out of range panic.
func Window[T any](items []T, offset, limit int) []T {
	if offset < 0 || limit <= 0 || offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
