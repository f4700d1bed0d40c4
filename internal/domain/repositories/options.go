package repositories

// ListOptions carries the optional query-string knobs for list endpoints.
// OrderBy is the API field name; repositories map it to a column and ignore
// names outside their whitelist.
type ListOptions struct {
	OrderBy        string
	OrderDirection string // "asc" or "desc"; defaults per repository
	Limit          int    // <= 0 means no limit
}
