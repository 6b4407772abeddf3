package domain

import "errors"

// ErrNotFound signals that an operation targeted a point id that does not
// exist (or no longer exists).
var ErrNotFound = errors.New("ponto não encontrado")

// ValidationError reports a domain-rule violation on caller input. It is
// never fatal and always safe to echo back to the caller.
type ValidationError struct {
	Field   string `json:"campo"`
	Message string `json:"mensagem"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
