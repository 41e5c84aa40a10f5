package serverutils

// BaseResponse is the envelope used by non-proxy routes (health, fallbacks).
// The /api proxy endpoints answer with the flat bodies their browser
// contract dictates ({reply}, {ok}, {error}) instead.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

// ErrorBody is the flat error shape of the proxy endpoints.
type ErrorBody struct {
	Error string `json:"error"`
}
