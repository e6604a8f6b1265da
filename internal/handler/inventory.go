package handler

import (
	"net/http"

	"campuskart/internal/apierror"
	"campuskart/internal/dto"
	"campuskart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// ReceiveBatch records a stock reception: batch, cost lots and aggregate
// increments land in one transaction or not at all.
func (h *InventoryHandler) ReceiveBatch(c *gin.Context) {
	var req dto.ReceiveBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReceiveBatch(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) ListBatches(c *gin.Context) {
	var filter dto.BatchFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListBatches(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) GetBatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid batch id"))
		return
	}
	resp, err := h.svc.GetBatch(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
