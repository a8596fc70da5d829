package services

import "medwatch/internal/repositories"

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// NormalizePage clamps absent or non-positive paging inputs to the defaults
// instead of rejecting them.
func NormalizePage(pageNumber, pageSize int) (int, int) {
	if pageNumber <= 0 {
		pageNumber = DefaultPageNumber
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return pageNumber, pageSize
}

func pageWindow(pageNumber, pageSize int) repositories.ListParams {
	pageNumber, pageSize = NormalizePage(pageNumber, pageSize)
	return repositories.ListParams{
		Offset: (pageNumber - 1) * pageSize,
		Limit:  pageSize,
	}
}
