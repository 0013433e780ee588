package commons

type Response[T any] struct {
	Success bool     `json:"success"`
	Code    string   `json:"code,omitempty"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](code string, message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Code:    code,
		Message: message,
		Errors:  errors,
	}
}
