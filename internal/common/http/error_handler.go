package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
	"github.com/AlibekovAA/sunzone-forum/internal/common/httpmetrics"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
	"github.com/AlibekovAA/sunzone-forum/internal/observability/metrics"
)

type ErrorHandler struct {
	log *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

// HandleError writes err as an envelope. Domain errors keep their status and
// message; anything else is logged and reported as a bare 500.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	ctx := r.Context()

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		h.handleDomainError(w, r, domainErr)
		return
	}

	h.log.WithFields(ctx, logger.Fields{
		"action": "unhandled_error",
		"path":   r.URL.Path,
		"method": r.Method,
	}).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.RouteLabel(r),
		r.Method,
	).Inc()

	WriteError(w, http.StatusInternalServerError, commonerrors.ErrInternalError.Message())
}

func (h *ErrorHandler) handleDomainError(w http.ResponseWriter, r *http.Request, err commonerrors.DomainError) {
	ctx := r.Context()
	status := err.HTTPStatus()

	fields := logger.Fields{
		"error_code": err.Code(),
		"category":   string(err.Category()),
		"status":     status,
		"action":     "domain_error",
	}

	if status >= http.StatusInternalServerError {
		h.log.WithFields(ctx, fields).Errorf("domain error: %s", err.Error())
	} else if h.log.ShouldLog(logger.DEBUG) {
		h.log.WithFields(ctx, fields).Debugf("domain error: %s", err.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(err.Category()),
		err.Code(),
		strconv.Itoa(status),
	).Inc()

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.RouteLabel(r),
		r.Method,
	).Inc()

	message := err.Message()
	if status >= http.StatusInternalServerError {
		message = commonerrors.ErrInternalError.Message()
	}
	WriteError(w, status, message)
}
