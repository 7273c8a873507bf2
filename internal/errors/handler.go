package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"pricepulse/internal/dataprocessing"
	"pricepulse/internal/services"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem := h.ErrorToProblem(err, r)
	problem.WithExtension("trace_id", reqID)

	if renderErr := problem.Render(w, r); renderErr != nil {
		h.logger.ErrorContext(r.Context(), "writing problem response failed",
			slog.String("error", renderErr.Error()))
	}
}

// ErrorToProblem maps service and pipeline errors onto the problem
// taxonomy: a missing source, a tableless source and empty chart results
// map to 404, a bad table index to 400, unparsable content to 422,
// everything else to 500.
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)
	case errors.Is(err, dataprocessing.ErrSourceNotFound):
		return NewProblemDetails(
			http.StatusNotFound,
			TypeNotFound,
			"Source Not Found",
			err.Error(),
			r.URL.Path,
		)
	case errors.Is(err, dataprocessing.ErrNoTables):
		return NewProblemDetails(
			http.StatusNotFound,
			TypeNotFound,
			"No Tables Found",
			err.Error(),
			r.URL.Path,
		)
	case errors.Is(err, dataprocessing.ErrParseFailure):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeParseFailure,
			"Source Not Parsable",
			err.Error(),
			r.URL.Path,
		)
	case errors.Is(err, services.ErrTableOutOfRange), errors.Is(err, services.ErrUnknownSegment):
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeOutOfRange,
			"Parameter Out Of Range",
			err.Error(),
			r.URL.Path,
		)
	case errors.Is(err, services.ErrNoChartData):
		return NewProblemDetails(
			http.StatusNotFound,
			TypeNotFound,
			"No Chart Data",
			err.Error(),
			r.URL.Path,
		)
	}

	var problem *ProblemDetails
	if errors.As(err, &problem) {
		return problem
	}

	return NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred while processing the request",
		r.URL.Path,
	)
}
