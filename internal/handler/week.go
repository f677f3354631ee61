package handler

import (
	"net/http"
	"time"

	"ojt-tracker/internal/logger"
	"ojt-tracker/internal/model"
	"ojt-tracker/internal/observability"
	"ojt-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type WeekHandler struct {
	week    *service.WeekService
	summary *service.SummaryService
	journal *service.JournalService
}

func NewWeekHandler(week *service.WeekService, summary *service.SummaryService, journal *service.JournalService) *WeekHandler {
	return &WeekHandler{week: week, summary: summary, journal: journal}
}

// GET /api/week?anchor=2026-03-04
// The anchor may be any day of the week; it resolves to its Monday.
func (h *WeekHandler) Get(c *gin.Context) {
	anchor := c.DefaultQuery("anchor", time.Now().Format("2006-01-02"))

	window, journal, err := h.week.ComputeWeek(c.Request.Context(), c.GetInt("user_id"), anchor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.WeekResponse{Window: window, Journal: journal})
}

// POST /api/week/summary
// Generates prose for the anchor's week but does not persist it; the
// client saves explicitly via PUT /api/journals.
func (h *WeekHandler) GenerateSummary(c *gin.Context) {
	var req model.GenerateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := c.GetInt("user_id")
	window, _, err := h.week.ComputeWeek(c.Request.Context(), uid, req.Anchor)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	text, err := h.summary.Generate(c.Request.Context(), window, req.Mode, req.Provider)
	observability.RecordSummary(req.Mode, err)
	if err != nil {
		logger.Warn("summary.failed", "uid", uid, "mode", req.Mode, "provider", req.Provider, "err", err)
		writeServiceError(c, err)
		return
	}
	logger.Info("summary.generated", "uid", uid, "mode", req.Mode, "week", window.Start)
	c.JSON(http.StatusOK, gin.H{"summary": text, "week_start": window.Start})
}

// PUT /api/journals
func (h *WeekHandler) SaveJournal(c *gin.Context) {
	var req model.SaveJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := c.GetInt("user_id")
	journal, err := h.journal.Save(c.Request.Context(), uid, req.WeekStartDate, req.JournalText)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	logger.Info("journal.saved", "uid", uid, "week", journal.WeekStartDate, "id", journal.ID)
	c.JSON(http.StatusOK, journal)
}
