package handler

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}
