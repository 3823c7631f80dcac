package dto

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`

	// RequestID is set on internal errors so they can be matched to server logs.
	RequestID string `json:"requestID,omitempty"`
}
