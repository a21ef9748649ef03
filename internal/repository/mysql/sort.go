package mysql

import (
	"fmt"

	"crm-service/internal/pagination"

	"gorm.io/gorm/clause"
)

// orderClause maps API sort properties onto whitelisted columns. Rows are
// ordered by id when no sort is requested so paging stays stable.
func orderClause(sort []pagination.Order, columns map[string]string) (clause.OrderBy, error) {
	if len(sort) == 0 {
		return clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}}}}, nil
	}

	orderBy := clause.OrderBy{Columns: make([]clause.OrderByColumn, 0, len(sort))}
	for _, o := range sort {
		col, ok := columns[o.Property]
		if !ok {
			return clause.OrderBy{}, fmt.Errorf("%w: %s", pagination.ErrInvalidSortProperty, o.Property)
		}
		orderBy.Columns = append(orderBy.Columns, clause.OrderByColumn{
			Column: clause.Column{Name: col},
			Desc:   o.IsDesc(),
		})
	}
	return orderBy, nil
}
