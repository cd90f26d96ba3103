package response

type StandardApiResponse struct {
	Status     string      `json:"status"`           // "success" or "error"
	StatusCode int         `json:"status_code"`      // HTTP status code
	Message    string      `json:"message"`          // Human-readable message
	Data       interface{} `json:"data,omitempty"`   // Payload for success
	Errors     interface{} `json:"errors,omitempty"` // Validation or error details
}

// ErrorBody is the error payload callers branch on: a stable kind plus the
// message, and for capacity failures the availability observed server-side.
type ErrorBody struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Available *int   `json:"available,omitempty"`
}
