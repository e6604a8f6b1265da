package handler

import (
	"net/http"

	"campuskart/internal/dto"
	"campuskart/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) GetGroup(c *gin.Context) {
	resp, err := h.svc.GetGroup(c.Request.Context(), c.Param("group"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) UpdateGroup(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateGroup(c.Request.Context(), c.Param("group"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
