package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arthur-DiasP/Delivery/internal/service"
	"github.com/Arthur-DiasP/Delivery/pkg/middleware"
)

type addItemRequest struct {
	ProductID string   `json:"product_id" binding:"required"`
	Quantity  *int     `json:"quantity"`
	Removed   []string `json:"removed"`
	OptionIDs []string `json:"option_ids"`
	Note      string   `json:"note" binding:"max=200"`
}

type changeQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type applyOfferRequest struct {
	OfferID string `json:"offer_id" binding:"required"`
	Confirm bool   `json:"confirm"`
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

type CartHandler struct {
	cart    *service.CartService
	coupons *service.CouponService
	logger  *zap.Logger
}

func NewCartHandler(cart *service.CartService, coupons *service.CouponService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cart:    cart,
		coupons: coupons,
		logger:  logger,
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.cart.View(c.Request.Context(), middleware.Identity(c))
	h.respond(c, view, err)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	cmd := service.AddItemCommand{
		ProductID: req.ProductID,
		Quantity:  1,
		Removed:   req.Removed,
		OptionIDs: req.OptionIDs,
		Note:      req.Note,
	}
	if req.Quantity != nil {
		cmd.Quantity = *req.Quantity
	}

	view, err := h.cart.AddItem(c.Request.Context(), middleware.Identity(c), cmd)
	h.respond(c, view, err)
}

func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	view, err := h.cart.ChangeQuantity(c.Request.Context(), middleware.Identity(c), c.Param("lineId"), req.Delta)
	h.respond(c, view, err)
}

func (h *CartHandler) RemoveLine(c *gin.Context) {
	view, err := h.cart.RemoveLine(c.Request.Context(), middleware.Identity(c), c.Param("lineId"))
	h.respond(c, view, err)
}

func (h *CartHandler) ApplyOffer(c *gin.Context) {
	var req applyOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	view, err := h.cart.ApplyOffer(c.Request.Context(), middleware.Identity(c), req.OfferID, req.Confirm)
	h.respond(c, view, err)
}

func (h *CartHandler) RemoveOffer(c *gin.Context) {
	confirm, _ := strconv.ParseBool(c.Query("confirm"))

	view, err := h.cart.RemoveOffer(c.Request.Context(), middleware.Identity(c), confirm)
	h.respond(c, view, err)
}

func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req applyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	view, err := h.coupons.Apply(c.Request.Context(), middleware.Identity(c), req.Code)
	h.respond(c, view, err)
}

func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	view, err := h.coupons.Remove(c.Request.Context(), middleware.Identity(c))
	h.respond(c, view, err)
}

func (h *CartHandler) respond(c *gin.Context, view *service.CartView, err error) {
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
