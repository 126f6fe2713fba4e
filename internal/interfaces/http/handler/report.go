package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pyasti/backend/internal/application/report"
	"github.com/pyasti/backend/internal/interfaces/http/middleware"
)

const defaultSummaryRange = 30 * 24 * time.Hour

// ReportHandler handles sales summary HTTP requests
type ReportHandler struct {
	BaseHandler
	summaryService *report.SummaryService
}

// NewReportHandler creates a new report handler
func NewReportHandler(summaryService *report.SummaryService) *ReportHandler {
	return &ReportHandler{summaryService: summaryService}
}

// AdminSummary aggregates the whole storefront. Admin only.
func (h *ReportHandler) AdminSummary(c *gin.Context) {
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}

	summary, err := h.summaryService.AdminSummary(c.Request.Context(), middleware.GetRole(c), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SellerSummary aggregates the requesting seller's activity
func (h *ReportHandler) SellerSummary(c *gin.Context) {
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}

	summary, err := h.summaryService.SellerSummary(c.Request.Context(), middleware.GetUserID(c), middleware.GetRole(c), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// dateRange parses the from/to query parameters, defaulting to the
// last 30 days
func (h *ReportHandler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	to := time.Now()
	from := to.Add(-defaultSummaryRange)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		// Inclusive end of day
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, true
}
