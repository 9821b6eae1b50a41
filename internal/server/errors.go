package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Fields []FieldError
}

func (e *ErrValidation) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" - "+f.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// ErrMalformedBody indicates the request body could not be parsed as JSON
type ErrMalformedBody struct {
	Cause error
}

func (e *ErrMalformedBody) Error() string {
	return fmt.Sprintf("Invalid request body: %v", e.Cause)
}

func (e *ErrMalformedBody) Unwrap() error {
	return e.Cause
}

// ErrBodyTooLarge indicates the request body exceeded the size limit
type ErrBodyTooLarge struct {
	Limit int64
}

func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// ErrInference indicates recommendation generation failed unexpectedly
type ErrInference struct {
	Cause any
}

func (e *ErrInference) Error() string {
	return fmt.Sprintf("Error generating recommendations: %v", e.Cause)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		malformedErr  *ErrMalformedBody
		tooLargeErr   *ErrBodyTooLarge
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &malformedErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
