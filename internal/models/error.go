package models

// ErrorResponse is the single-message error body, e.g. {"error": "Restaurant not found"}
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorsResponse is the multi-message error body, e.g. {"errors": ["validation errors"]}
type ErrorsResponse struct {
	Errors []string `json:"errors"`
}

// Client-facing error messages
const (
	MsgRestaurantNotFound      = "Restaurant not found"
	MsgRestaurantPizzaNotFound = "Restaurant/Pizza not found"
	MsgValidationErrors        = "validation errors"
	MsgInternalServer          = "Internal server error"
)

// NewErrorResponse creates a single-message error body
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewErrorsResponse creates a multi-message error body
func NewErrorsResponse(messages ...string) ErrorsResponse {
	if messages == nil {
		messages = []string{}
	}
	return ErrorsResponse{Errors: messages}
}
