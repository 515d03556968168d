package response

// ErrorEntry mirrors one element of a GraphQL errors array
type ErrorEntry struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// Envelope is the GraphQL-style response body
type Envelope struct {
	Data   interface{}  `json:"data"`
	Errors []ErrorEntry `json:"errors,omitempty"`
}
