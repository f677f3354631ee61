package handler

import (
	"net/http"
	"strconv"
	"time"

	"ojt-tracker/internal/logger"
	"ojt-tracker/internal/model"
	"ojt-tracker/internal/observability"
	"ojt-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type LogHandler struct {
	daily *service.DailyService
}

func NewLogHandler(daily *service.DailyService) *LogHandler {
	return &LogHandler{daily: daily}
}

// POST /api/logs
func (h *LogHandler) Submit(c *gin.Context) {
	var req model.SubmitLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := c.GetInt("user_id")
	log, err := h.daily.Submit(c.Request.Context(), uid, req.Date, req.Hours, req.Notes, req.AudioURL)
	if err != nil {
		logger.Warn("log.submit.rejected", "uid", uid, "date", req.Date, "err", err)
		writeServiceError(c, err)
		return
	}
	logger.Info("log.submitted", "uid", uid, "date", log.Date, "hours", log.HoursWorked)
	observability.RecordLogPersisted(log.CreatedAt)
	c.JSON(http.StatusCreated, log)
}

// GET /api/logs?search=&page=&per_page=
func (h *LogHandler) List(c *gin.Context) {
	page, perPage := pageParams(c, 10)
	search := c.Query("search")

	logs, total, err := h.daily.List(c.Request.Context(), c.GetInt("user_id"), search, page, perPage)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if logs == nil {
		logs = []model.DailyLog{}
	}
	c.JSON(http.StatusOK, model.LogListResponse{Logs: logs, Total: total, Page: page, PerPage: perPage})
}

// DELETE /api/logs/:id
func (h *LogHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	uid := c.GetInt("user_id")
	if err := h.daily.Delete(c.Request.Context(), uid, id); err != nil {
		writeServiceError(c, err)
		return
	}
	logger.Info("log.deleted", "uid", uid, "id", id)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/logs/total
func (h *LogHandler) Total(c *gin.Context) {
	total, err := h.daily.TotalHours(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "remaining": service.MaxTotalHours - total})
}

// GET /api/logs/export
func (h *LogHandler) Export(c *gin.Context) {
	buf, err := h.daily.ExportXLSX(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	name := "ojt-logs-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
