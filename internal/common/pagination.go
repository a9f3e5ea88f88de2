// File: internal/common/pagination.go
package common

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps user-supplied paging values: non-positive values
// fall back to the defaults and the page size is capped.
func NormalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// PageOffset converts a 1-based page into a row offset.
func PageOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}
