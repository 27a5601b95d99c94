package repository

// ListParams bounds a list query. Filter is a substring match on the
// resource's searchable column; empty means no filter.
type ListParams struct {
	Limit  int
	Offset int
	Filter string
}
