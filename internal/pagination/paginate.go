package pagination

import "fxconvert/internal/domain"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type Page[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"pagination"`
}

// Paginate returns the page-th slice of at most limit items. Pages past the end are empty.
// The returned data never aliases items.
func Paginate[T any](items []T, page, limit int) (Page[T], error) {
	if page < 1 || limit < 1 {
		return Page[T]{}, domain.ErrInvalidPagination
	}

	total := len(items)
	meta := Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}

	data := make([]T, 0)
	if offset := (page - 1) * limit; offset < total {
		end := min(offset+limit, total)
		data = append(data, items[offset:end]...)
	}
	return Page[T]{Data: data, Meta: meta}, nil
}
