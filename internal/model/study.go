package model

// Settings keys persisted in the settings table.
const (
	SettingDailyGoal            = "daily_goal"
	SettingExamDate             = "exam_date"
	SettingSyncURL              = "sync_url"
	SettingUserID               = "user_id"
	SettingAutoSyncEnabled      = "auto_sync_enabled"
	SettingAutoSyncInterval     = "auto_sync_interval"
	SettingSyncOnPause          = "sync_on_pause"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingAdminPasswordHash    = "admin_password"
)

const (
	DefaultDailyGoalSeconds        = 7200
	DefaultAutoSyncIntervalSeconds = 300
)

// DateLayout is the day-granularity key used for study log rows.
const DateLayout = "2006-01-02"

type Course struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	URLPattern string `json:"url_pattern"`
}

type StudyLog struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Date     string `json:"date"`
	Duration int64  `json:"duration"`
}

// Report is one activity assertion from the browser extension. URL is
// informational only and never influences the transition.
type Report struct {
	CourseID  string `json:"course_id"`
	Active    bool   `json:"active"`
	Timestamp int64  `json:"timestamp"`
	URL       string `json:"url"`
}

// CurrentSession is the live view of the open session; Duration is computed
// from the session start, not from committed logs.
type CurrentSession struct {
	CourseName string `json:"course_name"`
	Duration   int64  `json:"duration"`
}

type CourseStat struct {
	CourseID   string  `json:"course_id"`
	CourseName string  `json:"course_name"`
	Subject    string  `json:"subject"`
	Duration   int64   `json:"duration"`
	Percent    float64 `json:"percent"`
}

type DailyStat struct {
	Date     string `json:"date"`
	Duration int64  `json:"duration"`
	GoalMet  bool   `json:"goal_met"`
}

type Statistics struct {
	Subjects    []string     `json:"subjects"`
	CourseStats []CourseStat `json:"course_stats"`
	DailyStats  []DailyStat  `json:"daily_stats"`
}

// SyncPayload is the full export pushed to the cloud API.
type SyncPayload struct {
	UserID    string       `json:"userId,omitempty"`
	Courses   []Course     `json:"courses"`
	StudyLogs []StudyLog   `json:"studyLogs"`
	Settings  SyncSettings `json:"settings"`
}

type SyncSettings struct {
	DailyGoal int64  `json:"daily_goal"`
	ExamDate  string `json:"exam_date"`
}
