package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/jonathan/stylist-expert/internal/logging"
	validation "github.com/jonathan/stylist-expert/internal/schemas"
	"github.com/jonathan/stylist-expert/internal/server/middleware"
	"github.com/jonathan/stylist-expert/internal/types"
	"github.com/rs/zerolog"
)

const (
	apiMessage = "AI Fashion Stylist API"
	apiVersion = "1.0.0"

	// maxRequestBodyBytes bounds recommendation request bodies.
	maxRequestBodyBytes = 1 << 20
)

// RootResponse represents the response for /
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// ValidationErrorResponse is the 422 body for invalid recommendation requests.
type ValidationErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details"`
}

// handleRoot returns the API banner
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, RootResponse{Message: apiMessage, Version: apiVersion})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRules returns every rule in the loaded knowledge base
func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.engine.Rules())
}

// handleRecommend runs inference for the posted user profile
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	input, err := s.decodeUserInput(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	recs, err := s.recommend(input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.RecommendationResponse{Recommendations: recs})
}

// recommend converts an engine panic into an ErrInference.
func (s *Server) recommend(input types.UserInput) (recs []types.Recommendation, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &ErrInference{Cause: p}
		}
	}()
	return s.engine.Infer(input), nil
}

// decodeUserInput reads, schema-checks and validates the request body.
func (s *Server) decodeUserInput(w http.ResponseWriter, r *http.Request) (types.UserInput, error) {
	var input types.UserInput

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return input, &ErrBodyTooLarge{Limit: maxErr.Limit}
		}
		return input, &ErrMalformedBody{Cause: err}
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return input, &ErrMalformedBody{Cause: err}
	}

	if err := s.inputSchema.ValidateBytes(body); err != nil {
		var schemaErr *validation.ValidationError
		if !errors.As(err, &schemaErr) {
			return input, &ErrMalformedBody{Cause: err}
		}
		fields := make([]FieldError, 0, len(schemaErr.Errors))
		for _, fe := range schemaErr.Errors {
			fields = append(fields, FieldError{Field: fe.Field, Message: fe.Message})
		}
		return input, &ErrValidation{Fields: fields}
	}

	if err := json.Unmarshal(body, &input); err != nil {
		return input, &ErrMalformedBody{Cause: err}
	}

	return input, nil
}

// writeError maps err to a status code and writes the JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)

	var event *zerolog.Event
	if status >= http.StatusInternalServerError {
		event = logging.Error()
	} else {
		event = logging.Warn()
	}
	event.Err(err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Int("status", status).
		Msg("request failed")

	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		s.jsonResponse(w, status, ValidationErrorResponse{
			Error:   "validation error",
			Details: validationErr.Fields,
		})
		return
	}
	s.errorResponse(w, status, err.Error())
}
