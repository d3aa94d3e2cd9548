package listing

import (
	"math"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Params{Page: 0, Limit: 500, SortOrder: "asc"}.Normalize()
	if p.Page != 1 || p.Limit != MaxLimit || p.SortOrder != SortAsc || p.SortBy != "createdAt" {
		t.Fatalf("unexpected normalized params: %+v", p)
	}
	if q := (Params{SortOrder: "sideways"}).Normalize(); q.SortOrder != SortDesc || q.Limit != DefaultLimit {
		t.Fatalf("unexpected fallback params: %+v", q)
	}
}

func TestOffsetClampsHugePages(t *testing.T) {
	for _, page := range []int{math.MaxInt, math.MaxInt / 2, MaxPage + 1} {
		p := Params{Page: page, Limit: MaxLimit}
		if got := p.Normalize().Page; got != MaxPage {
			t.Fatalf("page %d: expected clamp to %d, got %d", page, MaxPage, got)
		}
		if off := p.Offset(); off < 0 || off != (MaxPage-1)*MaxLimit {
			t.Fatalf("page %d: unexpected offset %d", page, off)
		}
	}
	items := []int{1, 2, 3}
	if page, meta := Page(items, Params{Page: math.MaxInt, Limit: 2}); len(page) != 0 || meta.HasNext {
		t.Fatalf("expected empty last page, got %v %+v", page, meta)
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		total  int
		want   Meta
	}{
		{name: "empty", params: Params{}, total: 0, want: Meta{Page: 1, Limit: 10}},
		{name: "first of three", params: Params{Page: 1, Limit: 10}, total: 25, want: Meta{Page: 1, Limit: 10, Total: 25, TotalPages: 3, HasNext: true}},
		{name: "middle", params: Params{Page: 2, Limit: 10}, total: 25, want: Meta{Page: 2, Limit: 10, Total: 25, TotalPages: 3, HasNext: true, HasPrev: true}},
		{name: "last exact", params: Params{Page: 2, Limit: 5}, total: 10, want: Meta{Page: 2, Limit: 5, Total: 10, TotalPages: 2, HasPrev: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewMeta(tc.params, tc.total); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestOrderByWhitelist(t *testing.T) {
	columns := map[string]string{"createdAt": "e.created_at", "lastName": "e.last_name"}
	if got := (Params{SortBy: "lastName", SortOrder: "ASC"}).OrderBy(columns); got != " ORDER BY e.last_name ASC, id ASC" {
		t.Fatalf("unexpected order clause %q", got)
	}
	if got := (Params{SortBy: "password; DROP TABLE"}).OrderBy(columns); got != " ORDER BY e.created_at DESC, id DESC" {
		t.Fatalf("unexpected fallback order clause %q", got)
	}
}

func TestSearchClause(t *testing.T) {
	if got := (Params{}).SearchClause([]string{"name"}, 1); got != "" {
		t.Fatalf("expected no clause, got %q", got)
	}
	got := (Params{Search: "Ann"}).SearchClause([]string{"first_name", "last_name"}, 3)
	want := " AND (strpos(first_name, $3) > 0 OR strpos(last_name, $3) > 0)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPageSlices(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	page, meta := Page(items, Params{Page: 2, Limit: 2})
	if len(page) != 2 || page[0] != 3 || !meta.HasNext || !meta.HasPrev {
		t.Fatalf("unexpected page %v meta %+v", page, meta)
	}
	page, _ = Page(items, Params{Page: 9, Limit: 2})
	if len(page) != 0 {
		t.Fatalf("expected empty page, got %v", page)
	}
}
