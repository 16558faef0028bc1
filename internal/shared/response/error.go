package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"conquest-server/internal/shared/errors"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Error logs err once and writes it as JSON with the status its type maps to.
// Handlers return errors up to here instead of logging them themselves.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	errorType := errors.GetType(err)
	statusCode := StatusCode(errorType)

	logError(logger, r, err, errorType, statusCode)

	message := err.Error()
	if errorType == errors.ErrorTypeInternal {
		message = "internal server error"
	}
	sendErrorResponse(w, errorType, message, statusCode)
}

func StatusCode(errorType errors.ErrorType) int {
	switch errorType {
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeValidation:
		return http.StatusBadRequest
	case errors.ErrorTypeConflict:
		return http.StatusConflict
	case errors.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrorTypeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errors.ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrorTypeExternal, errors.ErrorTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func logError(logger *slog.Logger, r *http.Request, err error, errorType errors.ErrorType, statusCode int) {
	logCtx := logger.With(
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", statusCode,
	)

	switch errorType {
	case errors.ErrorTypeNotFound, errors.ErrorTypeValidation, errors.ErrorTypeConflict:
		// rejected commands are routine in an idle game
		logCtx.Debug("Request rejected", "error", err)
	case errors.ErrorTypeUnauthorized, errors.ErrorTypeRateLimited:
		logCtx.Warn("Request refused", "error", err)
	case errors.ErrorTypeUnavailable:
		logCtx.Info("Simulation unavailable", "error", err)
	case errors.ErrorTypeExternal:
		logCtx.Error("External service error", "error", err)
	default:
		logCtx.Error("Internal server error", "error", err)
	}
}

func sendErrorResponse(w http.ResponseWriter, errorType errors.ErrorType, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// the status line is already out, nothing useful to do on failure
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   string(errorType),
		Message: message,
		Code:    statusCode,
	})
}
