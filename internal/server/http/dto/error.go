package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError names a request field that failed validation.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status string `json:"status"`
}
