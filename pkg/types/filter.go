package types

// Filter represents query parameters for pagination of list endpoints.
type Filter struct {
	Limit          int  `json:"limit"`
	Offset         int  `json:"offset"`
	Page           int  `json:"page"`
	WithPagination bool `json:"with_pagination"`
}
