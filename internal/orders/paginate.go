package orders

// DefaultPageSize is the number of orders shown per page.
const DefaultPageSize = 10

// Paginate returns the 1-based page of items. Pages outside the available
// range yield an empty, non-nil slice.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return []T{}
	}

	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))

	return items[start:end]
}

// PageCount returns ceil(total/size). Zero items means zero pages.
func PageCount(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
