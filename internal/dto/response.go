package dto

// APIResponse is the uniform success envelope. Every endpoint responds with
// it; errors use the APIError shape from internal/errors instead.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewAPIResponse creates a success envelope around a payload
func NewAPIResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}
