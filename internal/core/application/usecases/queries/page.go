package queries

import "freight/internal/pkg/errs"

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Page bounds a list query. A zero Limit selects DefaultPageSize.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() (Page, error) {
	if p.Limit == 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit < 1 || p.Limit > MaxPageSize {
		return Page{}, errs.NewValueIsOutOfRangeError("limit", p.Limit, 1, MaxPageSize)
	}
	if p.Offset < 0 {
		return Page{}, errs.NewValueIsOutOfRangeError("offset", p.Offset, 0, "unbounded")
	}
	return p, nil
}
