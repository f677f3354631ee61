package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ojt-tracker/internal/model"

	"gorm.io/gorm"
)

type WeekService struct {
	db *gorm.DB
}

func NewWeekService(db *gorm.DB) *WeekService { return &WeekService{db: db} }

// WeekStart returns the Monday on or before t. A Sunday anchor resolves to
// the Monday six days prior.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// ComputeWeek builds the 7-slot window around the anchor date and resolves
// the journal for that week, if any. Absence of a journal is not an error.
// Each call is a fresh read; nothing is cached across week navigations.
func (s *WeekService) ComputeWeek(ctx context.Context, userID int, anchor string) (*model.WeekWindow, *model.WeeklyJournal, error) {
	t, err := time.Parse(dateLayout, anchor)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bad anchor date", ErrInvalidInput)
	}
	start := WeekStart(t)
	end := start.AddDate(0, 0, 6)

	var logs []model.DailyLog
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?",
			userID, start.Format(dateLayout), end.Format(dateLayout)).
		Order("date").Find(&logs).Error
	if err != nil {
		return nil, nil, fmt.Errorf("query week logs: %w", err)
	}

	byDate := make(map[string]model.DailyLog, len(logs))
	for _, log := range logs {
		byDate[log.Date] = log
	}

	window := &model.WeekWindow{
		Start: start.Format(dateLayout),
		End:   end.Format(dateLayout),
	}
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		date := day.Format(dateLayout)
		slot := model.DaySlot{Date: date, Weekday: day.Weekday().String()}
		if log, ok := byDate[date]; ok {
			slot.Hours = log.HoursWorked
			slot.Notes = log.Notes
			slot.HasLog = true
			window.Total += log.HoursWorked
		}
		window.Days[i] = slot
	}

	var journal model.WeeklyJournal
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND week_start_date = ?", userID, window.Start).
		First(&journal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return window, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("query journal: %w", err)
	}
	return window, &journal, nil
}
