package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"ojt-tracker/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

type DailyService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDailyService(db *gorm.DB) *DailyService {
	return &DailyService{db: db, now: time.Now}
}

type submitInput struct {
	Date     string  `validate:"required,datetime=2006-01-02"`
	Hours    float64 `validate:"required,gt=0,lte=24"`
	Notes    string  `validate:"max=5000"`
	AudioURL string  `validate:"omitempty,max=512"`
}

// Submit validates and inserts a single day's entry. Checks run in order:
// local validation, 500h quota, one-entry-per-date, insert. The
// check-then-insert sequence is not transactional; a racing duplicate is
// caught by the unique index and reported as ErrDuplicateDate.
func (s *DailyService) Submit(ctx context.Context, userID int, date, hoursRaw, notes, audioURL string) (*model.DailyLog, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(hoursRaw), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: hours must be a number", ErrInvalidInput)
	}
	in := submitInput{Date: date, Hours: hours, Notes: notes, AudioURL: audioURL}
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if math.Mod(hours*2, 1) != 0 {
		return nil, fmt.Errorf("%w: hours must be a multiple of 0.5", ErrInvalidInput)
	}
	if date > s.now().Format(dateLayout) {
		return nil, fmt.Errorf("%w: date must not be in the future", ErrInvalidInput)
	}

	total, err := s.TotalHours(ctx, userID)
	if err != nil {
		return nil, err
	}
	if total+hours > MaxTotalHours {
		return nil, &QuotaError{Remaining: MaxTotalHours - total}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.DailyLog{}).
		Where("user_id = ? AND date = ?", userID, date).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check existing log: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateDate
	}

	log := model.DailyLog{
		UserID: userID, Date: date,
		HoursWorked: hours, Notes: notes, AudioURL: audioURL,
	}
	if err := s.db.WithContext(ctx).Create(&log).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateDate
		}
		return nil, fmt.Errorf("insert log: %w", err)
	}
	return &log, nil
}

// TotalHours sums every stored entry for the user.
func (s *DailyService) TotalHours(ctx context.Context, userID int) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).Model(&model.DailyLog{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(hours_worked), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum hours: %w", err)
	}
	return total, nil
}

// List returns a page of the user's logs, newest first, optionally
// filtered by a notes substring.
func (s *DailyService) List(ctx context.Context, userID int, search string, page, perPage int) ([]model.DailyLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	q := s.db.WithContext(ctx).Model(&model.DailyLog{}).Where("user_id = ?", userID)
	if search != "" {
		q = q.Where("notes LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count logs: %w", err)
	}

	var logs []model.DailyLog
	err := q.Order("date DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list logs: %w", err)
	}
	return logs, total, nil
}

// Delete removes a log the user owns. Logs have no edit path; corrections
// are delete-and-resubmit.
func (s *DailyService) Delete(ctx context.Context, userID, logID int) error {
	var log model.DailyLog
	err := s.db.WithContext(ctx).First(&log, logID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load log: %w", err)
	}
	if log.UserID != userID {
		return ErrPermissionDenied
	}
	if err := s.db.WithContext(ctx).Delete(&log).Error; err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	return nil
}

// ExportXLSX renders the user's full log history as a spreadsheet.
func (s *DailyService) ExportXLSX(ctx context.Context, userID int) (*bytes.Buffer, error) {
	var logs []model.DailyLog
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date").Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Hours", "Notes", "Audio"})
	total := 0.0
	for i, log := range logs {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(sheet, cell, &[]interface{}{log.Date, log.HoursWorked, log.Notes, log.AudioURL})
		total += log.HoursWorked
	}
	f.SetSheetRow(sheet, fmt.Sprintf("A%d", len(logs)+2), &[]interface{}{"Total", total})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf, nil
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint")
}
