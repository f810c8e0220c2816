// Package jsonresponse enables consistent responses across all handlers.
package jsonresponse

// Meta carries pagination fields for list endpoints.
type Meta struct {
	CurrentPage int32 `json:"current_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int32 `json:"total_pages"`
	PageSize    int32 `json:"page_size"`
}

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Meta       *Meta  `json:"meta,omitempty"`
}

// OK wraps data into a success envelope.
func OK(statusCode int, message string, data any) Response {
	return Response{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}
}

// Paged wraps data and pagination meta into a success envelope.
func Paged(statusCode int, message string, data any, meta Meta) Response {
	return Response{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
		Meta:       &meta,
	}
}

// Error wraps a given err into an error envelope.
func Error(statusCode int, err error) Response {
	return Response{
		StatusCode: statusCode,
		Message:    err.Error(),
	}
}
