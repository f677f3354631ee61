package handler

import (
	"net/http"
	"strconv"

	"ojt-tracker/internal/logger"
	"ojt-tracker/internal/model"
	"ojt-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type JournalHandler struct {
	journal *service.JournalService
}

func NewJournalHandler(journal *service.JournalService) *JournalHandler {
	return &JournalHandler{journal: journal}
}

// GET /api/journals?search=&page=&per_page=
func (h *JournalHandler) List(c *gin.Context) {
	page, perPage := pageParams(c, 5)
	search := c.Query("search")

	journals, total, err := h.journal.List(c.Request.Context(), c.GetInt("user_id"), search, page, perPage)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if journals == nil {
		journals = []model.WeeklyJournal{}
	}
	c.JSON(http.StatusOK, model.JournalListResponse{Journals: journals, Total: total, Page: page, PerPage: perPage})
}

// DELETE /api/journals/:id
func (h *JournalHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	uid := c.GetInt("user_id")
	if err := h.journal.Delete(c.Request.Context(), uid, id); err != nil {
		writeServiceError(c, err)
		return
	}
	logger.Info("journal.deleted", "uid", uid, "id", id)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
