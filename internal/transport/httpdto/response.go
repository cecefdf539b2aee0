package httpdto

import "time"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func NewErrorResponse(err string, code string) ErrorResponse {
	return ErrorResponse{
		Error: err,
		Code:  code,
	}
}

// Timestamp formats t as ISO-8601 in UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
