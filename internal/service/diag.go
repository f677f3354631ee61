package service

import (
	"context"
	"fmt"

	"ojt-tracker/internal/model"

	"gorm.io/gorm"
)

// CheckResult is one probe outcome in a diagnostics run.
type CheckResult struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

type DiagService struct {
	db *gorm.DB
}

func NewDiagService(db *gorm.DB) *DiagService { return &DiagService{db: db} }

// Check re-probes store connectivity and per-table readability. It is a
// debugging aid for permission- and schema-shaped storage errors, not a
// correctness mechanism; probes keep going after a failure so the report
// covers every table.
func (s *DiagService) Check(ctx context.Context) []CheckResult {
	results := []CheckResult{s.ping(ctx)}

	tables := []struct {
		name  string
		model interface{}
	}{
		{"users", &model.User{}},
		{"profiles", &model.Profile{}},
		{"daily_logs", &model.DailyLog{}},
		{"weekly_journals", &model.WeeklyJournal{}},
	}
	for _, t := range tables {
		var count int64
		err := s.db.WithContext(ctx).Model(t.model).Count(&count).Error
		r := CheckResult{Name: "table:" + t.name, OK: err == nil}
		if err != nil {
			r.Detail = err.Error()
		} else {
			r.Detail = fmt.Sprintf("%d rows", count)
		}
		results = append(results, r)
	}
	return results
}

func (s *DiagService) ping(ctx context.Context) CheckResult {
	var one int
	err := s.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
	r := CheckResult{Name: "connectivity", OK: err == nil}
	if err != nil {
		r.Detail = err.Error()
	}
	return r
}
