package listing

// DefaultPageSize is the page size used by the dashboard tables.
const DefaultPageSize = 5

// Paginate slices items for the given 1-based page and returns the page
// together with the total page count (ceil(len/size), 0 for an empty
// set). The engine does not clamp: an out-of-range page yields an empty
// page. Callers that want the original view behavior clamp with
// ClampPage first.
func Paginate[T any](items []T, page, size int) ([]T, int) {
	if size <= 0 {
		size = DefaultPageSize
	}

	totalPages := (len(items) + size - 1) / size

	start := (page - 1) * size
	if page < 1 || start >= len(items) {
		return []T{}, totalPages
	}

	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// ClampPage pins page into [1, totalPages]; a zero totalPages clamps to 1.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}

// TotalPages returns ceil(total/size) with the engine's size fallback.
func TotalPages(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return (total + size - 1) / size
}
