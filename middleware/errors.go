package middleware

type ClientError struct {
	MessageKey    string            `json:"messageKey"`
	MessageParams map[string]string `json:"messageParams"`
	Message       string            `json:"message"`
	Errors        []ClientError     `json:"errors"`
}

var (
	ErrInvalidRequestBody = ClientError{
		MessageKey: "invalidRequestBody",
		Message:    "Invalid request body",
	}
	ErrInvalidOrMissingRequestParameter = ClientError{
		MessageKey: "invalidOrMissingRequestParameter",
		Message:    "Invalid or missing request parameter: {{param}}",
	}
	ErrNotFound = ClientError{
		MessageKey: "notFound",
		Message:    "The requested {{resource}} does not exist",
	}
	ErrInternalServerError = ClientError{
		MessageKey: "internalServerError",
		Message:    "Unexpected error.",
	}
	ErrRequestTimeout = ClientError{
		MessageKey: "requestTimeout",
		Message:    "The request took too long to process",
	}
)

// WithParam returns a copy of the error with one message parameter set.
func (e ClientError) WithParam(key, value string) ClientError {
	params := make(map[string]string, len(e.MessageParams)+1)
	for k, v := range e.MessageParams {
		params[k] = v
	}
	params[key] = value
	e.MessageParams = params
	return e
}
