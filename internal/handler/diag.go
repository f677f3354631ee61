package handler

import (
	"net/http"

	"ojt-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type DiagHandler struct {
	diag *service.DiagService
}

func NewDiagHandler(diag *service.DiagService) *DiagHandler {
	return &DiagHandler{diag: diag}
}

// GET /api/diagnostics — structured breakdown of store health, meant for
// chasing permission- or schema-shaped errors from the UI.
func (h *DiagHandler) Check(c *gin.Context) {
	results := h.diag.Check(c.Request.Context())
	ok := true
	for _, r := range results {
		if !r.OK {
			ok = false
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": ok, "checks": results})
}
