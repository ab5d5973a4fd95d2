package domain

// Query carries the parameters a caller would have passed to the real
// endpoint. It has no identity; build a fresh one per call.
type Query struct {
	Search   string
	Location string
	Page     int
	PageSize int
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Normalized returns a copy with page and pageSize defaults applied.
func (q Query) Normalized() Query {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}
