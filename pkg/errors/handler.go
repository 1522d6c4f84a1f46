package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ErrorHandler turns errors into response bodies of the form
// {"error": "<message>", ...details} and logs them.
type ErrorHandler struct {
	logger        *zap.Logger
	debug         bool
	defaultStatus int
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger, debug bool) *ErrorHandler {
	return &ErrorHandler{
		logger:        logger,
		debug:         debug,
		defaultStatus: http.StatusInternalServerError,
	}
}

// Resolve maps an error to a status code and response body.
func (h *ErrorHandler) Resolve(err error) (int, map[string]interface{}) {
	appErr := GetAppError(err)
	if appErr == nil {
		appErr = NewInternalError(err)
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = h.defaultStatus
	}

	body := make(map[string]interface{}, len(appErr.Details)+1)
	for k, v := range appErr.Details {
		body[k] = v
	}
	body["error"] = appErr.Message
	if h.debug && appErr.Cause != nil {
		body["cause"] = appErr.Cause.Error()
	}

	h.log(appErr, status)
	return status, body
}

// Handle processes an error and sends an HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	status, body := h.Resolve(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		h.logger.Error("Failed to encode error response",
			zap.Error(encErr),
			zap.String("path", r.URL.Path),
		)
	}
}

// Middleware returns an HTTP middleware that converts panics into 500 responses
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.Handle(w, r, NewInternalError(fmt.Errorf("panic: %v", rec)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (h *ErrorHandler) log(err *AppError, status int) {
	fields := []zap.Field{
		zap.String("error_type", string(err.Type)),
		zap.Int("status", status),
	}
	if err.Cause != nil {
		fields = append(fields, zap.Error(err.Cause))
	}

	switch {
	case status >= 500:
		h.logger.Error(err.Message, fields...)
	case status >= 400:
		h.logger.Warn(err.Message, fields...)
	default:
		h.logger.Info(err.Message, fields...)
	}
}
