// Package listing carries page/search/sort parameters from the HTTP layer
// into SQL and builds the pagination meta block.
package listing

import (
	"fmt"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (Page-1)*Limit far from integer overflow.
	MaxPage = 1_000_000

	SortAsc  = "ASC"
	SortDesc = "DESC"
)

type Params struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Normalize fills defaults and clamps out-of-range values.
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
	p.SortOrder = strings.ToUpper(strings.TrimSpace(p.SortOrder))
	if p.SortOrder != SortAsc {
		p.SortOrder = SortDesc
	}
	if strings.TrimSpace(p.SortBy) == "" {
		p.SortBy = "createdAt"
	}
	return p
}

func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// OrderBy maps the public sortBy key onto a whitelisted column. Unknown keys
// fall back to the createdAt column; the "id" entry, when present, names the
// tiebreak column.
func (p Params) OrderBy(columns map[string]string) string {
	p = p.Normalize()
	column, ok := columns[p.SortBy]
	if !ok {
		column = columns["createdAt"]
	}
	if column == "" {
		column = "created_at"
	}
	tiebreak := columns["id"]
	if tiebreak == "" {
		tiebreak = "id"
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s %s", column, p.SortOrder, tiebreak, p.SortOrder)
}

// SearchClause returns a case-sensitive substring predicate over fields
// using placeholder $argPos, or "" when no search term is set.
func (p Params) SearchClause(fields []string, argPos int) string {
	if p.Search == "" || len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("strpos(%s, $%d) > 0", field, argPos))
	}
	return " AND (" + strings.Join(parts, " OR ") + ")"
}

func (p Params) LimitClause(argPos int) string {
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
}

func NewMeta(p Params, total int) Meta {
	p = p.Normalize()
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}

// Page slices items already held in memory. Used by fakes and by the few
// listings computed outside SQL.
func Page[T any](items []T, p Params) ([]T, Meta) {
	p = p.Normalize()
	meta := NewMeta(p, len(items))
	start := p.Offset()
	if start >= len(items) {
		return []T{}, meta
	}
	end := min(start+p.Limit, len(items))
	return items[start:end], meta
}
