// Package errors provides RFC 7807 Problem Details responses and the
// central mapping from service-layer errors to HTTP status codes.
package errors

import (
	"encoding/json"
	"net/http"
)

// Problem type URIs. Clients key on these, not on status codes alone.
const (
	TypeValidation   = "/errors/validation"
	TypeNotFound     = "/errors/not-found"
	TypeOutOfRange   = "/errors/out-of-range"
	TypeParseFailure = "/errors/source/unparsable"
	TypeRateLimit    = "/errors/rate-limit"
	TypeTimeout      = "/errors/timeout"
	TypeInternal     = "/errors/internal"
)

// ProblemDetails implements RFC 7807 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Additional fields for extensibility
	Extensions map[string]interface{} `json:"-"`
}

// Error implements the error interface so problems can travel as errors.
func (pd *ProblemDetails) Error() string {
	return pd.Title + ": " + pd.Detail
}

// Render writes the problem as an RFC 7807 response. The content type is
// written directly so the generic JSON responder cannot overwrite it.
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(pd.Status)
	return json.NewEncoder(w).Encode(pd)
}

// MarshalJSON custom marshaler to include extensions
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{})
	data["type"] = pd.Type
	data["title"] = pd.Title
	data["status"] = pd.Status
	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}
	for k, v := range pd.Extensions {
		data[k] = v
	}
	return json.Marshal(data)
}

// NewProblemDetails creates a new RFC 7807 compliant error
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]interface{}),
	}
}

// WithExtension adds an extension field to the problem details
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// ValidationError describes one failed parameter constraint.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationProblem creates a 400 problem carrying field-level errors.
func NewValidationProblem(instance string, fields []ValidationError) *ProblemDetails {
	pd := NewProblemDetails(
		http.StatusBadRequest,
		TypeValidation,
		"Request Validation Failed",
		"One or more query parameters are invalid",
		instance,
	)
	pd.WithExtension("errors", fields)
	return pd
}
