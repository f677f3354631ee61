package model

import "time"

type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile shares its primary key with the owning User.
type Profile struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	FullName  string    `json:"full_name"`
	Program   string    `json:"program"`
	Theme     string    `json:"theme"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Date columns hold plain YYYY-MM-DD text; range filters and week-slot
// lookups compare them lexicographically.
type DailyLog struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	UserID      int       `gorm:"uniqueIndex:uk_user_date" json:"user_id"`
	Date        string    `gorm:"uniqueIndex:uk_user_date" json:"date"`
	HoursWorked float64   `json:"hours_worked"`
	Notes       string    `json:"notes"`
	AudioURL    string    `json:"audio_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type WeeklyJournal struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	UserID        int       `gorm:"uniqueIndex:uk_user_week" json:"user_id"`
	WeekStartDate string    `gorm:"uniqueIndex:uk_user_week" json:"week_start_date"`
	JournalText   string    `json:"journal_text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (User) TableName() string          { return "users" }
func (Profile) TableName() string       { return "profiles" }
func (DailyLog) TableName() string      { return "daily_logs" }
func (WeeklyJournal) TableName() string { return "weekly_journals" }
