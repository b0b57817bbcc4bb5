package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a rejected operation
type Kind string

const (
	KindValidation  Kind = "validation_error"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindNotEligible Kind = "not_eligible"
)

// DomainError is an expected rejection carrying the HTTP status it maps to.
// Anything else returned by the service is an internal failure.
type DomainError struct {
	Status  int
	Kind    Kind
	Message string
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func domainError(status int, kind Kind, message string) *DomainError {
	return &DomainError{
		Status:  status,
		Kind:    kind,
		Message: message,
	}
}

func validationError(format string, args ...any) *DomainError {
	return domainError(http.StatusBadRequest, KindValidation, "Invalid request. "+fmt.Sprintf(format, args...))
}

func notFoundError(kind, id string) *DomainError {
	return domainError(http.StatusNotFound, KindNotFound, fmt.Sprintf("No %s with _id: %s found.", kind, id))
}

func notFoundMessage(message string) *DomainError {
	return domainError(http.StatusNotFound, KindNotFound, message)
}

func conflictError(message string) *DomainError {
	return domainError(http.StatusBadRequest, KindConflict, message)
}

func notEligibleError(format string, args ...any) *DomainError {
	return domainError(http.StatusForbidden, KindNotEligible, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of a domain error, or "" for internal failures
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
