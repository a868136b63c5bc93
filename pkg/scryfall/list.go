package scryfall

// List is the paginated envelope returned by the search endpoint. When the
// request fails Scryfall answers with Object "error" and fills Details.
type List struct {
	Object     string `json:"object"`
	TotalCards int    `json:"total_cards,omitempty"`
	HasMore    bool   `json:"has_more"`
	NextPage   string `json:"next_page,omitempty"`
	Data       []Card `json:"data"`

	// Error payload fields.
	Code    string `json:"code,omitempty"`
	Status  int    `json:"status,omitempty"`
	Details string `json:"details,omitempty"`
}

// IsError reports whether the payload is an error object.
func (l *List) IsError() bool {
	return l.Object == "error"
}

// String returns a pointer to s, for building optional fields.
func String(s string) *string {
	return &s
}
