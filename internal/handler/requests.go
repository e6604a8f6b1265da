package handler

import (
	"net/http"

	"campuskart/internal/apierror"
	"campuskart/internal/dto"
	"campuskart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestsHandler serves the side-service board: printing jobs, GCash
// cash-in/out and delivery errands. Creation is public, management is admin.
type RequestsHandler struct{ svc service.RequestService }

func NewRequestsHandler(svc service.RequestService) *RequestsHandler {
	return &RequestsHandler{svc: svc}
}

func (h *RequestsHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RequestsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request id"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequestsHandler) List(c *gin.Context) {
	var filter dto.ServiceRequestFilter
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

func (h *RequestsHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request id"))
		return
	}
	var req dto.UpdateRequestStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
