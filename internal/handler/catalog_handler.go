package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arthur-DiasP/Delivery/internal/catalog"
	"github.com/Arthur-DiasP/Delivery/internal/domain"
)

type CatalogHandler struct {
	cache *catalog.Cache
}

func NewCatalogHandler(cache *catalog.Cache) *CatalogHandler {
	return &CatalogHandler{cache: cache}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products := h.cache.Products(domain.Category(c.Query("category")), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

func (h *CatalogHandler) CurrentOffer(c *gin.Context) {
	offer, ok := h.cache.CurrentOffer()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no offer available", "code": "no_offer"})
		return
	}
	c.JSON(http.StatusOK, offer)
}
