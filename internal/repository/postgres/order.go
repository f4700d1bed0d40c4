package postgres

import (
	"fmt"

	"learnnote/internal/domain/repositories"
)

// orderClause builds an ORDER BY / LIMIT suffix from list options. OrderBy is
// an API field name resolved through the per-entity column whitelist; unknown
// names fall back to the default ordering so the clause is never built from
// raw client input.
func orderClause(opts repositories.ListOptions, columns map[string]string, fallback string) string {
	column, ok := columns[opts.OrderBy]
	if !ok {
		column = fallback
	}

	direction := "ASC"
	if opts.OrderDirection == "desc" || (opts.OrderBy != "" && opts.OrderDirection == "") {
		// Explicit orderBy without a direction sorts descending, newest first
		direction = "DESC"
	}

	clause := fmt.Sprintf(" ORDER BY %s %s", column, direction)
	if opts.Limit > 0 {
		clause += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	return clause
}
