package response

type APIResponseCode int

const (
	APIResponseCodeOK         APIResponseCode = 0
	APIResponseCodeWarning    APIResponseCode = 20000
	APIResponseCodeBadRequest APIResponseCode = 40000
	APIResponseCodeNotFound   APIResponseCode = 40400
	APIResponseCodeError      APIResponseCode = 50000
)

var codeToMsg = map[APIResponseCode]string{
	APIResponseCodeOK:         "ok",
	APIResponseCodeWarning:    "warning",
	APIResponseCodeBadRequest: "bad request",
	APIResponseCodeNotFound:   "not found",
	APIResponseCodeError:      "unexpected error",
}

// APIResponse is the generic response envelope used by HTTP APIs.
// Use OKT / WarnT / ErrorT helpers to construct instances.
//
// Every boundary operation returns one of these, even on failure; a
// warning marks a non-fatal condition (e.g. a webhook update that matched
// no local record) that must still be acknowledged with HTTP 200 so the
// remote party does not retry.
type APIResponse[T any] struct {
	Code    APIResponseCode `json:"code"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
}

// OKT returns a successful response with data.
func OKT[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{Code: APIResponseCodeOK, Message: codeToMsg[APIResponseCodeOK], Data: data}
}

// WarnT returns a warning response with an explicit message and data.
func WarnT[T any](message string, data T) *APIResponse[T] {
	return &APIResponse[T]{Code: APIResponseCodeWarning, Message: message, Data: data}
}

// ErrorT returns an error response with the code's message and optional data.
func ErrorT[T any](code APIResponseCode, data T) *APIResponse[T] {
	return &APIResponse[T]{Code: code, Message: codeToMsg[code], Data: data}
}
