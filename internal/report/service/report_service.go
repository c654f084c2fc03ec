package service

import (
	"context"
	"time"

	"dcreamy/internal/businessday"
	"dcreamy/internal/dto"
	apperrors "dcreamy/internal/errors"
	"dcreamy/internal/report/repository"
)

const topProductsLimit = 5

type ReportRepository interface {
	SumBetween(ctx context.Context, warungID string, start, end time.Time) (repository.DaySums, error)
	TopProductsBetween(ctx context.Context, warungID string, start, end time.Time, limit int) ([]repository.ProductSales, error)
}

// ReportService aggregates transactions over business-day windows. Every
// total it reports is bounded by the 21:00 cutoff, not by calendar midnight.
type ReportService struct {
	repo  ReportRepository
	clock *businessday.Clock
}

func NewReportService(repo ReportRepository, clock *businessday.Clock) *ReportService {
	return &ReportService{
		repo:  repo,
		clock: clock,
	}
}

// Daily reports one business day. An empty label means the current one.
func (s *ReportService) Daily(ctx context.Context, warungID, label string) (*dto.DailyReportDTO, error) {
	if label == "" {
		label = s.clock.Label()
	}

	start, end, err := s.clock.RangeForLabel(label)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be a YYYY-MM-DD date", apperrors.ValidationDetail{
			Field:   "date",
			Message: "date must be a YYYY-MM-DD date",
		})
	}

	report, err := s.buildDay(ctx, warungID, label, start, end, true)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Weekly reports the last seven business days, oldest first, with the
// current day as the final entry.
func (s *ReportService) Weekly(ctx context.Context, warungID string) (*dto.WeeklyReportDTO, error) {
	current, err := time.Parse("2006-01-02", s.clock.Label())
	if err != nil {
		return nil, apperrors.NewInternalError("failed to resolve current business day", err)
	}

	weekly := &dto.WeeklyReportDTO{Days: make([]dto.DailyReportDTO, 0, 7)}
	for offset := 6; offset >= 0; offset-- {
		label := current.AddDate(0, 0, -offset).Format("2006-01-02")
		start, end, err := s.clock.RangeForLabel(label)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to resolve business day window", err)
		}

		day, err := s.buildDay(ctx, warungID, label, start, end, false)
		if err != nil {
			return nil, err
		}

		weekly.Days = append(weekly.Days, *day)
		weekly.Income += day.Income
		weekly.Expense += day.Expense
	}
	weekly.Profit = weekly.Income - weekly.Expense

	return weekly, nil
}

// BusinessDay describes the current trading window for the banner.
func (s *ReportService) BusinessDay() *dto.BusinessDayDTO {
	return &dto.BusinessDayDTO{
		Day:           s.clock.Label(),
		Start:         s.clock.Start().Format(time.RFC3339),
		End:           s.clock.End().Format(time.RFC3339),
		MsUntilReset:  s.clock.MillisUntilReset(),
		CountdownText: s.clock.Countdown(),
	}
}

func (s *ReportService) buildDay(ctx context.Context, warungID, label string, start, end time.Time, withTopProducts bool) (*dto.DailyReportDTO, error) {
	sums, err := s.repo.SumBetween(ctx, warungID, start, end)
	if err != nil {
		return nil, err
	}

	report := &dto.DailyReportDTO{
		Day:          label,
		Income:       sums.Income,
		Expense:      sums.Expense,
		Profit:       sums.Income - sums.Expense,
		Transactions: sums.Transactions,
		TopProducts:  []dto.ProductSalesDTO{},
	}

	if withTopProducts {
		sales, err := s.repo.TopProductsBetween(ctx, warungID, start, end, topProductsLimit)
		if err != nil {
			return nil, err
		}
		for _, sale := range sales {
			report.TopProducts = append(report.TopProducts, dto.ProductSalesDTO{
				ProductID: sale.ProductID,
				Name:      sale.Name,
				Quantity:  sale.Quantity,
				Revenue:   sale.Revenue,
			})
		}
	}

	return report, nil
}
