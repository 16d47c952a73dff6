package repository

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// SearchColumn maps a console criteria label onto a SQL expression
type SearchColumn struct {
	Criteria string
	Expr     string
	// Exact columns compare by numeric equality when selected by criteria
	Exact bool
}

// SearchSpec describes how one table is listed and searched
type SearchSpec struct {
	Columns []SearchColumn
	Order   string
}

// Filter is a parameterized WHERE fragment. Clause is empty when nothing is filtered.
type Filter struct {
	Clause string
	Args   []interface{}
	// None means the search can never match, e.g. a non-numeric id
	None bool
}

// Build resolves search and criteria into a Filter. Unknown criteria fall back to
// matching any column, the same as an empty criteria.
func (s SearchSpec) Build(search, criteria string) Filter {
	search = strings.TrimSpace(search)
	if search == "" {
		return Filter{}
	}

	for _, column := range s.Columns {
		if column.Criteria != criteria {
			continue
		}
		if column.Exact {
			id, err := strconv.ParseUint(search, 10, 64)
			if err != nil {
				return Filter{None: true}
			}
			return Filter{Clause: column.Expr + " = ?", Args: []interface{}{id}}
		}
		return Filter{Clause: likeExpr(column) + " ILIKE ?", Args: []interface{}{"%" + search + "%"}}
	}

	clauses := make([]string, 0, len(s.Columns))
	args := make([]interface{}, 0, len(s.Columns))
	for _, column := range s.Columns {
		clauses = append(clauses, likeExpr(column)+" ILIKE ?")
		args = append(args, "%"+search+"%")
	}
	return Filter{Clause: "(" + strings.Join(clauses, " OR ") + ")", Args: args}
}

// Apply narrows query by the filter and orders it
func (s SearchSpec) Apply(query *gorm.DB, filter Filter) *gorm.DB {
	if filter.Clause != "" {
		query = query.Where(filter.Clause, filter.Args...)
	}
	if s.Order != "" {
		query = query.Order(s.Order)
	}
	return query
}

// non-text columns are cast so LIKE behaves the same on every type
func likeExpr(column SearchColumn) string {
	if column.Exact {
		return "CAST(" + column.Expr + " AS TEXT)"
	}
	return column.Expr
}
