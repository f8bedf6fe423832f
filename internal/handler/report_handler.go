package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studytrack/internal/metrics"
	"studytrack/internal/model"
	"studytrack/internal/service"
)

// ReportHandler is the boundary with the external observer: it validates
// report shape, hands valid reports to the tracker and always acknowledges
// them. Session-machine outcomes are internal and never turn into transport
// errors.
type ReportHandler struct {
	tracker *service.Tracker
	courses *service.CourseService
}

type statusRequest struct {
	CourseID  string `json:"course_id"`
	Active    bool   `json:"active"`
	Timestamp *int64 `json:"timestamp"`
	URL       string `json:"url"`
}

func NewReportHandler(tracker *service.Tracker, courses *service.CourseService) *ReportHandler {
	return &ReportHandler{tracker: tracker, courses: courses}
}

func (h *ReportHandler) Status(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ReportsTotal.WithLabelValues("malformed").Inc()
		c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: "invalid request body"})
		return
	}
	if req.CourseID == "" {
		metrics.ReportsTotal.WithLabelValues("malformed").Inc()
		c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: "course_id is required"})
		return
	}
	if req.Timestamp == nil {
		metrics.ReportsTotal.WithLabelValues("malformed").Inc()
		c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: "timestamp is required"})
		return
	}

	h.tracker.HandleReport(c.Request.Context(), model.Report{
		CourseID:  req.CourseID,
		Active:    req.Active,
		Timestamp: *req.Timestamp,
		URL:       req.URL,
	})

	metrics.ReportsTotal.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, apiResponse{Success: true, Message: "Status updated"})
}

// Courses serves the matching rules the extension polls for.
func (h *ReportHandler) Courses(c *gin.Context) {
	courses, apiErr := h.courses.List(c.Request.Context())
	if apiErr != nil {
		c.JSON(http.StatusOK, apiResponse{Success: false, Message: apiErr.Message})
		return
	}
	c.JSON(http.StatusOK, apiResponse{Success: true, Data: courses})
}

func (h *ReportHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, apiResponse{Success: true, Message: "OK"})
}
