package feedback

import (
	"strings"

	"gorm.io/gorm"
)

// filterSpec is one predicate of a list query. Filters are assembled up front
// as data and applied uniformly, so the pipeline itself carries no branching.
type filterSpec struct {
	clause string
	args   []interface{}
}

// buildFilters translates QueryParams into the ordered predicate list:
// search first, then exact-match filters, then the created_at range.
// All predicates are AND-combined.
func buildFilters(p QueryParams) []filterSpec {
	var filters []filterSpec

	if p.Search != "" {
		like := "%" + strings.ToLower(p.Search) + "%"
		filters = append(filters, filterSpec{
			clause: "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)",
			args:   []interface{}{like, like},
		})
	}
	if p.Type != "" {
		filters = append(filters, filterSpec{clause: "type = ?", args: []interface{}{p.Type}})
	}
	if p.Status != "" {
		filters = append(filters, filterSpec{clause: "status = ?", args: []interface{}{p.Status}})
	}
	if p.Priority != "" {
		filters = append(filters, filterSpec{clause: "priority = ?", args: []interface{}{p.Priority}})
	}
	if p.DateFrom != nil {
		filters = append(filters, filterSpec{clause: "created_at >= ?", args: []interface{}{*p.DateFrom}})
	}
	if p.DateTo != nil {
		filters = append(filters, filterSpec{clause: "created_at <= ?", args: []interface{}{*p.DateTo}})
	}

	return filters
}

func applyFilters(db *gorm.DB, filters []filterSpec) *gorm.DB {
	for _, f := range filters {
		db = db.Where(f.clause, f.args...)
	}
	return db
}

// orderClause builds the ORDER BY for a query. The id tie-break keeps pages
// stable when the sort key has duplicate values.
func orderClause(p QueryParams) string {
	return p.SortBy + " " + strings.ToUpper(p.SortOrder) + ", id ASC"
}
