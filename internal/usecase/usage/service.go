package usage

import (
	"context"
	"time"
)

// Period selects the reporting window.
type Period string

const (
	// PeriodDay reports against the daily budget window.
	PeriodDay Period = "day"
	// PeriodMonth reports against the monthly budget window.
	PeriodMonth Period = "month"
)

// Report describes token consumption against a budget window.
type Report struct {
	Period    Period `json:"period"`
	StartMS   int64  `json:"start_ms"`
	EndMS     int64  `json:"end_ms"`
	Limit     int64  `json:"limit"`
	Used      int64  `json:"used"`
	Remaining int64  `json:"remaining"`
	Exhausted bool   `json:"exhausted"`
	ResetsAt  int64  `json:"resets_at_ms"`
}

// Service handles usage reporting.
type Service struct {
	br BudgetReader
}

// New creates a Service. br can be nil (unlimited mode).
func New(br BudgetReader) *Service {
	return &Service{br: br}
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period Period) Report {
	now := time.Now().UTC()
	var start, end time.Time
	var limit, used, remaining int64

	switch period {
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
		if s.br != nil {
			limit = s.br.MonthlyLimit()
			used = s.br.MonthlyUsed()
			remaining = s.br.RemainingMonthly()
		}
	default:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end = start.Add(24 * time.Hour)
		period = PeriodDay
		if s.br != nil {
			limit = s.br.DailyLimit()
			used = s.br.DailyUsed()
			remaining = s.br.RemainingDaily()
		}
	}

	return Report{
		Period:    period,
		StartMS:   start.UnixMilli(),
		EndMS:     end.UnixMilli(),
		Limit:     limit,
		Used:      used,
		Remaining: remaining,
		Exhausted: limit > 0 && remaining <= 0,
		ResetsAt:  end.UnixMilli(),
	}
}
