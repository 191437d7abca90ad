package feedback

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int
		limit      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"middle page", 95, 3, 10, 10, true, true},
		{"last page", 95, 10, 10, 10, false, true},
		{"first page", 95, 1, 10, 10, true, false},
		{"single page", 3, 1, 10, 1, false, false},
		{"exact multiple", 100, 10, 10, 10, false, true},
		{"empty set", 0, 1, 10, 0, false, false},
		{"limit one", 5, 5, 1, 5, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.page, tt.limit)
			if p.TotalPages != tt.totalPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.totalPages)
			}
			if p.HasNext != tt.hasNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tt.hasNext)
			}
			if p.HasPrev != tt.hasPrev {
				t.Errorf("HasPrev = %v, want %v", p.HasPrev, tt.hasPrev)
			}
			if p.Total != tt.total || p.Page != tt.page || p.Limit != tt.limit {
				t.Errorf("echoed fields = %d/%d/%d, want %d/%d/%d",
					p.Total, p.Page, p.Limit, tt.total, tt.page, tt.limit)
			}
		})
	}
}

func TestOrderClauseAppendsTieBreak(t *testing.T) {
	p := QueryParams{SortBy: "priority", SortOrder: "desc"}
	got := orderClause(p)
	want := "priority DESC, id ASC"
	if got != want {
		t.Errorf("orderClause() = %q, want %q", got, want)
	}
}

func TestBuildFiltersOrderAndShape(t *testing.T) {
	search := "crash"
	p := QueryParams{Search: search, Type: "bug", Status: "new"}

	filters := buildFilters(p)
	if len(filters) != 3 {
		t.Fatalf("expected 3 filters, got %d", len(filters))
	}
	if filters[0].clause != "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)" {
		t.Errorf("search filter must come first, got %q", filters[0].clause)
	}
	if filters[1].clause != "type = ?" || filters[2].clause != "status = ?" {
		t.Errorf("unexpected filter order: %q, %q", filters[1].clause, filters[2].clause)
	}
}

func TestBuildFiltersEmptyParams(t *testing.T) {
	if got := buildFilters(QueryParams{}); len(got) != 0 {
		t.Errorf("expected no filters, got %d", len(got))
	}
}
