package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
	"github.com/Arthur-DiasP/Delivery/internal/service"
	"github.com/Arthur-DiasP/Delivery/pkg/middleware"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
	logger   *zap.Logger
}

func NewCheckoutHandler(checkout *service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

func (h *CheckoutHandler) BeginCheckout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	handoff, err := h.checkout.BeginCheckout(c.Request.Context(), middleware.Identity(c), req.Address)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, handoff)
}

func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req domain.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	requestID := middleware.GetRequestID(c)

	order, err := h.checkout.PlaceOrder(c.Request.Context(), middleware.Identity(c), req, requestID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, domain.CreateOrderResponse{
		OrderID:    order.OrderID,
		Status:     order.Status,
		GrandTotal: order.Totals.GrandTotal,
		Change:     order.Change,
		Message:    "Order created successfully",
	})
}

func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	order, err := h.checkout.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
