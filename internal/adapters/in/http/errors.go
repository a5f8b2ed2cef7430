package http

import (
	"errors"
	"fmt"
	"net/http"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	CodeNotFound                = "not_found"
	CodeValidationFailed        = "validation_failed"
	CodePricingRuleNotFound     = "pricing_rule_not_found"
	CodeInvalidStatusTransition = "invalid_status_transition"
	CodeInvalidPayment          = "invalid_payment_transition"
	CodeNotInvoiceable          = "shipment_not_invoiceable"
	CodeConcurrentModification  = "concurrent_modification"
	CodeSequenceOverflow        = "sequence_overflow"
	CodeInternal                = "internal_error"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{errs.ErrObjectNotFound, http.StatusNotFound, CodeNotFound},
	{pricing.ErrPricingRuleNotFound, http.StatusBadRequest, CodePricingRuleNotFound},
	{document.ErrSequenceOverflow, http.StatusServiceUnavailable, CodeSequenceOverflow},
	{shipment.ErrInvalidStatusTransition, http.StatusConflict, CodeInvalidStatusTransition},
	{invoice.ErrInvalidPaymentTransition, http.StatusConflict, CodeInvalidPayment},
	{services.ErrShipmentNotInvoiceable, http.StatusConflict, CodeNotInvoiceable},
	{errs.ErrVersionIsInvalid, http.StatusConflict, CodeConcurrentModification},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, CodeValidationFailed},
	{errs.ErrValueIsRequired, http.StatusBadRequest, CodeValidationFailed},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, CodeValidationFailed},
}

// classify maps an application error to a status and a stable error code.
// Unknown errors are internal.
func classify(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidationFailed
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConcurrentModification
	case http.StatusInternalServerError:
		return CodeInternal
	default:
		return http.StatusText(status)
	}
}

// ErrorHandler renders every error returned by a route as ErrorResponse.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status int
		body   ErrorResponse
		he     *echo.HTTPError
	)

	if errors.As(err, &he) {
		status = he.Code
		body = ErrorResponse{Code: httpErrorCode(status), Message: fmt.Sprint(he.Message)}
	} else {
		status, body.Code = classify(err)
		body.Message = err.Error()
	}

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("request failed",
			zap.String("route", c.Path()),
			zap.Error(err),
		)
		if body.Code == CodeInternal {
			body.Message = http.StatusText(status)
		}
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		logging.FromContext(c.Request().Context()).Warn("write error response", zap.Error(writeErr))
	}
}
