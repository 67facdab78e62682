package domain

import "errors"

// PageSize is the fixed number of products per page
const PageSize = 8

var ErrPageOutOfRange = errors.New("page out of range")

// Page returns the 1-based page of visible, clipped to the available length.
func Page(visible []Product, page, size int) []Product {
	if page < 1 || size < 1 {
		return []Product{}
	}
	start := (page - 1) * size
	if start >= len(visible) {
		return []Product{}
	}
	end := min(start+size, len(visible))
	return visible[start:end]
}

// PageCount is ceil(n/size)
func PageCount(n, size int) int {
	if n <= 0 || size < 1 {
		return 0
	}
	return (n + size - 1) / size
}

// PageNumbers lists the valid page numbers for n results. Zero results yield no pages.
func PageNumbers(n, size int) []int {
	count := PageCount(n, size)
	numbers := make([]int, count)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}
