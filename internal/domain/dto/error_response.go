package dto

import "time"

// ErrorResponse is the JSON body returned for every non-2xx response.
//
// Fields:
//   - Message: short, human readable description.
//   - ErrorDetails: underlying error text, if any.
//   - Timestamp: when the error was produced (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid date format, expected YYYY-MM-DD"`
	ErrorDetails string    `json:"error_details,omitempty" example:"parsing time \"2012-11-xx\""`
	Timestamp    time.Time `json:"timestamp" example:"2012-11-01T15:04:05Z"`
}

// Error implements the error interface so the response can be passed to c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
