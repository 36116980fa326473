package pagination

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit well inside int64.
	MaxPage = math.MaxInt32
)

// Params is a 1-based page request. Zero values mean "use the default".
type Params struct {
	Page  int
	Limit int
}

func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the zero-indexed row offset of the first item on the page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

type Meta struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	LastPage    int   `json:"lastPage"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewMeta derives page metadata from a total count. A total of zero yields
// LastPage 0 and no next page.
func NewMeta(total int64, page, limit int) Meta {
	n := Params{Page: page, Limit: limit}.Normalize()
	lastPage := int((total + int64(n.Limit) - 1) / int64(n.Limit))
	if total <= 0 {
		lastPage = 0
	}
	return Meta{
		Total:       total,
		Page:        n.Page,
		LastPage:    lastPage,
		HasNextPage: n.Page < lastPage,
		HasPrevPage: n.Page > 1,
	}
}
