package handler

import "github.com/gin-gonic/gin"

func RegisterRoutes(v1 *gin.RouterGroup, catalog *CatalogHandler, cart *CartHandler, checkout *CheckoutHandler) {
	v1.GET("/products", catalog.ListProducts)
	v1.GET("/offers/current", catalog.CurrentOffer)

	v1.GET("/cart", cart.GetCart)
	v1.POST("/cart/items", cart.AddItem)
	v1.PATCH("/cart/items/:lineId", cart.ChangeQuantity)
	v1.DELETE("/cart/items/:lineId", cart.RemoveLine)
	v1.POST("/cart/offer", cart.ApplyOffer)
	v1.DELETE("/cart/offer", cart.RemoveOffer)
	v1.POST("/cart/coupon", cart.ApplyCoupon)
	v1.DELETE("/cart/coupon", cart.RemoveCoupon)

	v1.POST("/checkout", checkout.BeginCheckout)
	v1.POST("/orders", checkout.PlaceOrder)
	v1.GET("/orders/:id", checkout.GetOrder)
}
