package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arthur-DiasP/Delivery/internal/repository"
	"github.com/Arthur-DiasP/Delivery/internal/service"
	"github.com/Arthur-DiasP/Delivery/internal/session"
	"github.com/Arthur-DiasP/Delivery/pkg/middleware"
)

type errorClass struct {
	err    error
	status int
	code   string
}

var errorClasses = []errorClass{
	{service.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
	{service.ErrInvalidCustomization, http.StatusBadRequest, "invalid_customization"},
	{service.ErrCouponCodeRequired, http.StatusBadRequest, "coupon_code_required"},
	{service.ErrInvalidAddress, http.StatusBadRequest, "invalid_address"},
	{service.ErrInvalidCustomer, http.StatusBadRequest, "invalid_customer"},
	{service.ErrInvalidPayment, http.StatusBadRequest, "invalid_payment"},
	{service.ErrInsufficientCash, http.StatusBadRequest, "insufficient_cash"},
	{service.ErrCartEmpty, http.StatusBadRequest, "cart_empty"},
	{session.ErrNoIdentity, http.StatusBadRequest, "missing_session"},

	{service.ErrProductNotFound, http.StatusNotFound, "product_not_found"},
	{service.ErrLineNotFound, http.StatusNotFound, "line_not_found"},
	{repository.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},

	{service.ErrConfirmationRequired, http.StatusConflict, "confirmation_required"},
	{service.ErrOfferUnavailable, http.StatusConflict, "offer_unavailable"},
	{service.ErrCouponLookupInFlight, http.StatusConflict, "coupon_lookup_in_progress"},
	{service.ErrCheckoutSessionMissing, http.StatusConflict, "checkout_session_missing"},
	{service.ErrCheckoutStale, http.StatusConflict, "checkout_stale"},

	{service.ErrCouponNotFound, http.StatusUnprocessableEntity, "coupon_not_found"},
	{service.ErrCouponInactive, http.StatusUnprocessableEntity, "coupon_inactive"},
	{service.ErrCouponExpired, http.StatusUnprocessableEntity, "coupon_expired"},

	{service.ErrLookupFailed, http.StatusServiceUnavailable, "temporarily_unavailable"},
}

func classify(err error) (int, string) {
	for _, ec := range errorClasses {
		if errors.Is(err, ec.err) {
			return ec.status, ec.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// respondError writes the error body. Internal errors are logged and
// their details are not exposed.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, code := classify(err)
	requestID := middleware.GetRequestID(c)

	if status == http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, gin.H{
			"error":      "internal error",
			"code":       code,
			"request_id": requestID,
		})
		return
	}

	c.JSON(status, gin.H{
		"error":      err.Error(),
		"code":       code,
		"request_id": requestID,
	})
}

func respondBindError(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("Invalid request",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request format",
		"code":    "invalid_request",
		"details": err.Error(),
	})
}
