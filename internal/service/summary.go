package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ojt-tracker/internal/model"
)

const (
	ModeManual = "manual"
	ModeAI     = "ai"
)

// SummaryService turns a week window into prose, either deterministically
// or through a registered text-generation provider. It never persists the
// result; saving to a journal is the caller's explicit step.
type SummaryService struct {
	providers map[string]Provider
}

func NewSummaryService(providers ...Provider) *SummaryService {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &SummaryService{providers: m}
}

func (s *SummaryService) Generate(ctx context.Context, week *model.WeekWindow, mode, providerName string) (string, error) {
	if week.Total <= 0 {
		return "", ErrNothingToSummarize
	}

	switch mode {
	case ModeManual:
		return renderManual(week), nil
	case ModeAI:
		p, ok := s.providers[providerName]
		if !ok {
			return "", fmt.Errorf("%w: unknown provider %q", ErrInvalidInput, providerName)
		}
		text, err := p.Generate(ctx, weekPrompt(week))
		if err != nil {
			return "", &ProviderError{Provider: p.Name(), Err: err}
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, mode)
	}
}

// renderManual produces the fixed-format report. Same window in, same text
// out.
func renderManual(week *model.WeekWindow) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Weekly Summary: %s\n\n", displayRange(week)))
	sb.WriteString(fmt.Sprintf("Total Hours: %.2f\n\n", week.Total))
	sb.WriteString("Daily Activities:\n\n")
	for _, day := range week.Days {
		if !day.HasLog {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s - %g hours\n", displayDay(day.Date), day.Hours))
		if strings.TrimSpace(day.Notes) != "" {
			sb.WriteString(fmt.Sprintf("Activities: %s\n", day.Notes))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// weekPrompt serializes the full week context for a provider.
func weekPrompt(week *model.WeekWindow) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Week: %s\n", displayRange(week)))
	sb.WriteString(fmt.Sprintf("Total hours: %.2f\n", week.Total))
	for _, day := range week.Days {
		if !day.HasLog {
			sb.WriteString(fmt.Sprintf("%s %s: no log\n", day.Weekday, day.Date))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s %s: %g hours", day.Weekday, day.Date, day.Hours))
		if day.Notes != "" {
			sb.WriteString(" - " + day.Notes)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func displayRange(week *model.WeekWindow) string {
	start, _ := time.Parse(dateLayout, week.Start)
	end, _ := time.Parse(dateLayout, week.End)
	return fmt.Sprintf("%s - %s", start.Format("January 2"), end.Format("January 2, 2006"))
}

func displayDay(date string) string {
	t, _ := time.Parse(dateLayout, date)
	return t.Format("Mon, Jan 2")
}
