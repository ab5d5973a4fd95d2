package domain

// Envelope is the uniform wrapper returned to callers whether data came from
// the live backend or the fixture catalog. The shape is identical on both
// paths; only Meta.IsMockData tells them apart, and callers never need to
// branch on it.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Meta       Meta        `json:"meta"`
}

// Pagination describes the slice of a collection the envelope carries.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Meta stamps every envelope with provenance and diagnostics.
type Meta struct {
	IsMockData bool   `json:"isMockData"`
	Timestamp  string `json:"timestamp"` // RFC3339
	Error      string `json:"error,omitempty"`
}
