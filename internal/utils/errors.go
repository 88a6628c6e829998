package utils

import "net/http"

// ErrorKind classifies a failed operation so the HTTP boundary can map it
// to a status code in exactly one place.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindAuthentication
	KindUnauthorized
	KindNotFound
	KindInternal
)

type APIError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return e.Message
}

func ValidationError(fields map[string]string) *APIError {
	return &APIError{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

func AuthenticationError(message string) *APIError {
	return &APIError{Kind: KindAuthentication, Message: message}
}

func NotFoundError(message string) *APIError {
	return &APIError{Kind: KindNotFound, Message: message}
}

func InternalError(message string) *APIError {
	return &APIError{Kind: KindInternal, Message: message}
}

// WriteError is the single boundary translating error kinds into HTTP
// responses. Handlers build APIErrors; only this function picks status
// codes.
func WriteError(w http.ResponseWriter, err *APIError) {
	status := http.StatusInternalServerError
	switch err.Kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindAuthentication:
		status = http.StatusBadRequest
	case KindUnauthorized:
		status = http.StatusUnauthorized
	case KindNotFound:
		status = http.StatusNotFound
	}
	JSONResponse(w, status, Payload{
		Success: false,
		Message: err.Message,
		Errors:  errFields(err),
	})
}

func errFields(err *APIError) any {
	if len(err.Fields) == 0 {
		return nil
	}
	return err.Fields
}
