package handler

import (
	"net/http"
	"time"

	"campuskart/internal/apierror"
	"campuskart/internal/model"
	"campuskart/internal/repository"

	"github.com/gin-gonic/gin"
)

// AuditHandler reads the append-only audit trail. Thin enough to sit
// directly on the repository.
type AuditHandler struct{ repo repository.AuditRepository }

func NewAuditHandler(repo repository.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

type auditEntry struct {
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Entity    string `json:"entity"`
	EntityID  string `json:"entity_id"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ListByEntity returns the trail for one entity, newest first.
func (h *AuditHandler) ListByEntity(c *gin.Context) {
	entity := c.Query("entity")
	entityID := c.Query("entity_id")
	if entity == "" || entityID == "" {
		c.JSON(http.StatusBadRequest, apierror.New("entity and entity_id are required"))
		return
	}

	entries, err := h.repo.ListByEntity(c.Request.Context(), entity, entityID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]auditEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toAuditEntry(e))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func toAuditEntry(e model.AuditLog) auditEntry {
	return auditEntry{
		Actor:     e.Actor,
		Action:    e.Action,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Detail:    e.Detail,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
