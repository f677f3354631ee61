package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ojt-tracker/internal/model"

	"gorm.io/gorm"
)

type JournalService struct {
	db *gorm.DB
}

func NewJournalService(db *gorm.DB) *JournalService { return &JournalService{db: db} }

// Save upserts the journal for (user, weekStart): update when one exists,
// insert otherwise. If a concurrent save wins the insert race, the unique
// index rejects ours and we retry once as an update.
func (s *JournalService) Save(ctx context.Context, userID int, weekStart, text string) (*model.WeeklyJournal, error) {
	t, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return nil, fmt.Errorf("%w: bad week start date", ErrInvalidInput)
	}
	if t.Weekday() != time.Monday {
		return nil, fmt.Errorf("%w: week start must be a Monday", ErrInvalidInput)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: journal text is empty", ErrInvalidInput)
	}

	existing, err := s.find(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.update(ctx, existing, text)
	}

	journal := model.WeeklyJournal{
		UserID: userID, WeekStartDate: weekStart, JournalText: text,
	}
	if err := s.db.WithContext(ctx).Create(&journal).Error; err != nil {
		if isDuplicateErr(err) {
			if existing, ferr := s.find(ctx, userID, weekStart); ferr == nil && existing != nil {
				return s.update(ctx, existing, text)
			}
			return nil, ErrDuplicateWeek
		}
		return nil, fmt.Errorf("insert journal: %w", err)
	}
	return &journal, nil
}

func (s *JournalService) find(ctx context.Context, userID int, weekStart string) (*model.WeeklyJournal, error) {
	var journal model.WeeklyJournal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND week_start_date = ?", userID, weekStart).
		First(&journal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	return &journal, nil
}

func (s *JournalService) update(ctx context.Context, journal *model.WeeklyJournal, text string) (*model.WeeklyJournal, error) {
	now := time.Now()
	err := s.db.WithContext(ctx).Model(journal).Updates(map[string]interface{}{
		"journal_text": text,
		"updated_at":   now,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update journal: %w", err)
	}
	journal.JournalText = text
	journal.UpdatedAt = now
	return journal, nil
}

// List returns a page of the user's journals, newest week first,
// optionally filtered by a text substring.
func (s *JournalService) List(ctx context.Context, userID int, search string, page, perPage int) ([]model.WeeklyJournal, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 5
	}

	q := s.db.WithContext(ctx).Model(&model.WeeklyJournal{}).Where("user_id = ?", userID)
	if search != "" {
		q = q.Where("journal_text LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count journals: %w", err)
	}

	var journals []model.WeeklyJournal
	err := q.Order("week_start_date DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&journals).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list journals: %w", err)
	}
	return journals, total, nil
}

func (s *JournalService) Delete(ctx context.Context, userID, journalID int) error {
	var journal model.WeeklyJournal
	err := s.db.WithContext(ctx).First(&journal, journalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load journal: %w", err)
	}
	if journal.UserID != userID {
		return ErrPermissionDenied
	}
	if err := s.db.WithContext(ctx).Delete(&journal).Error; err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}
	return nil
}
