package handler

import (
	"net/http"

	"campuskart/internal/apierror"
	"campuskart/internal/dto"
	"campuskart/internal/middleware"
	"campuskart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrdersHandler is the admin order board.
type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus moves the order forward through its lifecycle. Cancellation
// has its own endpoint because it restores stock.
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status, claims.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyPayment marks the latest pending payment attempt paid or rejected.
func (h *OrdersHandler) VerifyPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}
	var req dto.VerifyPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.VerifyPayment(c.Request.Context(), id, req.Status, claims.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel releases consumed lots and aggregate stock, then parks the order.
func (h *OrdersHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}
	var req dto.CancelOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.CancelOrder(c.Request.Context(), id, req.Reason, claims.Username); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete hard-removes the order tree. Stock is NOT restored; only the audit
// trail records that the order existed.
func (h *OrdersHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.DeleteOrder(c.Request.Context(), id, claims.Username); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
