package model

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
	Program  string `json:"program"`
}

type PasswordUpdateRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type ProfileUpdateRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Program  string `json:"program"`
	Theme    string `json:"theme" binding:"omitempty,oneof=light dark"`
}

type SubmitLogRequest struct {
	Date     string `json:"date" binding:"required"`
	Hours    string `json:"hours" binding:"required"`
	Notes    string `json:"notes"`
	AudioURL string `json:"audio_url"`
}

type LogListResponse struct {
	Logs    []DailyLog `json:"logs"`
	Total   int64      `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
}

type JournalListResponse struct {
	Journals []WeeklyJournal `json:"journals"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PerPage  int             `json:"per_page"`
}

type GenerateSummaryRequest struct {
	Anchor   string `json:"anchor" binding:"required"`
	Mode     string `json:"mode" binding:"required,oneof=manual ai"`
	Provider string `json:"provider"`
}

type SaveJournalRequest struct {
	WeekStartDate string `json:"week_start_date" binding:"required"`
	JournalText   string `json:"journal_text" binding:"required"`
}

// DaySlot is one calendar day inside a week window. Days without a stored
// log report zero hours and HasLog=false.
type DaySlot struct {
	Date    string  `json:"date"`
	Weekday string  `json:"weekday"`
	Hours   float64 `json:"hours"`
	Notes   string  `json:"notes"`
	HasLog  bool    `json:"has_log"`
}

// WeekWindow is derived per request and never persisted.
type WeekWindow struct {
	Start string     `json:"week_start"`
	End   string     `json:"week_end"`
	Days  [7]DaySlot `json:"days"`
	Total float64    `json:"total"`
}

type WeekResponse struct {
	Window  *WeekWindow    `json:"window"`
	Journal *WeeklyJournal `json:"journal,omitempty"`
}
