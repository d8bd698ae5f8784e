package response

type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// BatchResult reports the outcome of a sequential bulk operation. Batches
// never fail as a whole; partial failures surface here as counts.
type BatchResult struct {
	Total        int `json:"total"`
	SuccessCount int `json:"success_count"`
	ErrorCount   int `json:"error_count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
