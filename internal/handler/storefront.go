package handler

import (
	"net/http"

	"campuskart/internal/dto"
	"campuskart/internal/service"

	"github.com/gin-gonic/gin"
)

// StorefrontHandler serves the public, unauthenticated side of the shop:
// the catalog, checkout and order tracking by code.
type StorefrontHandler struct {
	products service.ProductService
	orders   service.OrderService
	settings service.SettingsService
}

func NewStorefrontHandler(products service.ProductService, orders service.OrderService, settings service.SettingsService) *StorefrontHandler {
	return &StorefrontHandler{products: products, orders: orders, settings: settings}
}

// Catalog returns active products grouped by category.
func (h *StorefrontHandler) Catalog(c *gin.Context) {
	cats, err := h.products.Storefront(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cats})
}

// CheckoutInfo exposes the knobs the storefront needs before placing an
// order: whether checkout is open, the delivery fee and the GCash account.
func (h *StorefrontHandler) CheckoutInfo(c *gin.Context) {
	ctx := c.Request.Context()
	checkout, err := h.settings.Checkout(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	gcash, err := h.settings.GCash(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	delivery, err := h.settings.Delivery(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"checkout": checkout,
		"gcash":    gcash,
		"delivery": delivery,
	})
}

// PlaceOrder runs the atomic settlement: stock decrement, FIFO lot
// allocation, order graph and initial payment in one transaction.
func (h *StorefrontHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.orders.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// TrackOrder lets a customer look up their order by its short code.
func (h *StorefrontHandler) TrackOrder(c *gin.Context) {
	resp, err := h.orders.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
