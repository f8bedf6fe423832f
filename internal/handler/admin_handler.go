package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "studytrack/internal/errors"
	"studytrack/internal/model"
	"studytrack/internal/service"
)

// AdminHandler exposes the administrative command surface consumed by the
// foreground shell: course CRUD, settings, live session, statistics and the
// sync export.
type AdminHandler struct {
	courses  *service.CourseService
	settings *service.SettingsService
	stats    *service.StatsService
	tracker  *service.Tracker
	sync     *service.SyncService
	auth     *service.AuthService
}

type courseRequest struct {
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	URLPattern string `json:"url_pattern"`
}

type dailyGoalRequest struct {
	Seconds int64 `json:"seconds"`
}

type examDateRequest struct {
	Date string `json:"date"`
}

type notificationsRequest struct {
	Enabled bool `json:"enabled"`
}

type adminPasswordRequest struct {
	Password string `json:"password"`
}

func NewAdminHandler(
	courses *service.CourseService,
	settings *service.SettingsService,
	stats *service.StatsService,
	tracker *service.Tracker,
	syncService *service.SyncService,
	auth *service.AuthService,
) *AdminHandler {
	return &AdminHandler{
		courses:  courses,
		settings: settings,
		stats:    stats,
		tracker:  tracker,
		sync:     syncService,
		auth:     auth,
	}
}

func (h *AdminHandler) ListCourses(c *gin.Context) {
	courses, apiErr := h.courses.List(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *AdminHandler) CreateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return
	}

	course, apiErr := h.courses.Create(c.Request.Context(), service.CourseInput{
		Name:       req.Name,
		Subject:    req.Subject,
		URLPattern: req.URLPattern,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"course": course})
}

func (h *AdminHandler) UpdateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return
	}

	course, apiErr := h.courses.Update(c.Request.Context(), c.Param("id"), service.CourseInput{
		Name:       req.Name,
		Subject:    req.Subject,
		URLPattern: req.URLPattern,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course})
}

func (h *AdminHandler) DeleteCourse(c *gin.Context) {
	if apiErr := h.courses.Delete(c.Request.Context(), c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) GetDailyGoal(c *gin.Context) {
	goal, apiErr := h.settings.DailyGoal(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seconds": goal})
}

func (h *AdminHandler) SetDailyGoal(c *gin.Context) {
	var req dailyGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return
	}
	if apiErr := h.settings.SetDailyGoal(c.Request.Context(), req.Seconds); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seconds": req.Seconds})
}

// GetToday reports the accumulated duration committed for the current date.
func (h *AdminHandler) GetToday(c *gin.Context) {
	today := time.Now().Format(model.DateLayout)
	total, apiErr := h.stats.TodayStudied(c.Request.Context(), today)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": today, "seconds": total})
}

// GetSession reports the live session; "session" is null while idle.
func (h *AdminHandler) GetSession(c *gin.Context) {
	session, err := h.tracker.CurrentSession(c.Request.Context())
	if err != nil {
		writeError(c, apperrors.Internal("failed to read current session"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (h *AdminHandler) GetStatistics(c *gin.Context) {
	var start, end, subject *string
	if v := c.Query("start"); v != "" {
		start = &v
	}
	if v := c.Query("end"); v != "" {
		end = &v
	}
	if v := c.Query("subject"); v != "" {
		subject = &v
	}

	stats, apiErr := h.stats.GetStatistics(c.Request.Context(), start, end, subject)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}

func (h *AdminHandler) GetExamDate(c *gin.Context) {
	date, apiErr := h.settings.ExamDate(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date})
}

func (h *AdminHandler) SetExamDate(c *gin.Context) {
	var req examDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return
	}
	if apiErr := h.settings.SetExamDate(c.Request.Context(), req.Date); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": req.Date})
}

func (h *AdminHandler) GetSyncConfig(c *gin.Context) {
	cfg, apiErr := h.settings.SyncConfig(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *AdminHandler) SetSyncConfig(c *gin.Context) {
	var req service.SyncConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return
	}
	if apiErr := h.settings.SetSyncConfig(c.Request.Context(), req); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *AdminHandler) GetAutoSyncConfig(c *gin.Context) {
	cfg, apiErr := h.settings.AutoSyncConfig(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *AdminHandler) SetAutoSyncConfig(c *gin.Context) {
	var req service.AutoSyncConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return
	}
	if apiErr := h.settings.SetAutoSyncConfig(c.Request.Context(), req); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *AdminHandler) GetNotifications(c *gin.Context) {
	enabled, apiErr := h.settings.NotificationsEnabled(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": enabled})
}

func (h *AdminHandler) SetNotifications(c *gin.Context) {
	var req notificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return
	}
	if apiErr := h.settings.SetNotificationsEnabled(c.Request.Context(), req.Enabled); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": req.Enabled})
}

func (h *AdminHandler) SetAdminPassword(c *gin.Context) {
	var req adminPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return
	}
	if apiErr := h.auth.SetPassword(c.Request.Context(), req.Password); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": req.Password != ""})
}

// GetSyncData returns the full export payload.
func (h *AdminHandler) GetSyncData(c *gin.Context) {
	payload, apiErr := h.sync.ExportData(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// PushSync performs an immediate push to the configured cloud endpoint.
func (h *AdminHandler) PushSync(c *gin.Context) {
	if err := h.sync.Push(c.Request.Context()); err != nil {
		if err == service.ErrSyncNotConfigured {
			writeError(c, apperrors.BadRequest("sync_not_configured", "sync_url and user_id must be set"))
			return
		}
		writeError(c, apperrors.Internal("sync push failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
