package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dcreamy/internal/businessday"
	apperrors "dcreamy/internal/errors"
	"dcreamy/internal/report/repository"
)

type mockReportRepository struct {
	sums       map[string]repository.DaySums
	top        []repository.ProductSales
	sumWindows [][2]time.Time
}

func (m *mockReportRepository) SumBetween(ctx context.Context, warungID string, start, end time.Time) (repository.DaySums, error) {
	m.sumWindows = append(m.sumWindows, [2]time.Time{start, end})
	return m.sums[start.Format(time.RFC3339)], nil
}

func (m *mockReportRepository) TopProductsBetween(ctx context.Context, warungID string, start, end time.Time, limit int) ([]repository.ProductSales, error) {
	return m.top, nil
}

func fixedClock(instant time.Time) *businessday.Clock {
	return businessday.NewWithNow(businessday.DefaultCutoffHour, businessday.DefaultUTCOffsetHours,
		func() time.Time { return instant })
}

func TestDailyUsesBusinessDayWindow(t *testing.T) {
	// 2026-02-05 10:00 WIB, so the window opened 2026-02-04 21:00 WIB.
	now := time.Date(2026, 2, 5, 3, 0, 0, 0, time.UTC)
	windowStart := time.Date(2026, 2, 4, 14, 0, 0, 0, time.UTC)

	repo := &mockReportRepository{
		sums: map[string]repository.DaySums{
			windowStart.Format(time.RFC3339): {Income: 90000, Expense: 25000, Transactions: 12},
		},
		top: []repository.ProductSales{{ProductID: "prod-1", Name: "Es Kopi", Quantity: 7, Revenue: 56000}},
	}

	service := NewReportService(repo, fixedClock(now))

	report, err := service.Daily(context.Background(), "warung-1", "")

	assert.NoError(t, err)
	assert.Equal(t, "2026-02-05", report.Day)
	assert.Equal(t, 90000.0, report.Income)
	assert.Equal(t, 65000.0, report.Profit)
	assert.Equal(t, 12, report.Transactions)
	assert.Len(t, report.TopProducts, 1)
	assert.Equal(t, "Es Kopi", report.TopProducts[0].Name)

	assert.Len(t, repo.sumWindows, 1)
	assert.True(t, repo.sumWindows[0][0].Equal(windowStart))
	assert.Equal(t, 24*time.Hour, repo.sumWindows[0][1].Sub(repo.sumWindows[0][0]))
}

func TestDailyRejectsMalformedDay(t *testing.T) {
	service := NewReportService(&mockReportRepository{}, fixedClock(time.Now()))

	_, err := service.Daily(context.Background(), "warung-1", "yesterday")

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestWeeklyCoversSevenConsecutiveDays(t *testing.T) {
	now := time.Date(2026, 2, 5, 3, 0, 0, 0, time.UTC)
	repo := &mockReportRepository{sums: map[string]repository.DaySums{}}

	service := NewReportService(repo, fixedClock(now))

	report, err := service.Weekly(context.Background(), "warung-1")

	assert.NoError(t, err)
	assert.Len(t, report.Days, 7)
	assert.Equal(t, "2026-01-30", report.Days[0].Day)
	assert.Equal(t, "2026-02-05", report.Days[6].Day)

	assert.Len(t, repo.sumWindows, 7)
	for i := 1; i < len(repo.sumWindows); i++ {
		assert.Equal(t, 24*time.Hour, repo.sumWindows[i][0].Sub(repo.sumWindows[i-1][0]))
	}
}

func TestWeeklySumsAcrossDays(t *testing.T) {
	now := time.Date(2026, 2, 5, 3, 0, 0, 0, time.UTC)
	dayStart := func(label string) string {
		parsed, _ := time.Parse("2006-01-02", label)
		return parsed.AddDate(0, 0, -1).Add(14 * time.Hour).UTC().Format(time.RFC3339)
	}

	repo := &mockReportRepository{
		sums: map[string]repository.DaySums{
			dayStart("2026-02-04"): {Income: 50000, Expense: 20000, Transactions: 5},
			dayStart("2026-02-05"): {Income: 30000, Expense: 10000, Transactions: 3},
		},
	}

	service := NewReportService(repo, fixedClock(now))

	report, err := service.Weekly(context.Background(), "warung-1")

	assert.NoError(t, err)
	assert.Equal(t, 80000.0, report.Income)
	assert.Equal(t, 30000.0, report.Expense)
	assert.Equal(t, 50000.0, report.Profit)
}

func TestBusinessDayBanner(t *testing.T) {
	// 20:30 WIB: thirty minutes before the cutoff.
	now := time.Date(2026, 2, 5, 13, 30, 0, 0, time.UTC)

	service := NewReportService(&mockReportRepository{}, fixedClock(now))

	banner := service.BusinessDay()

	assert.Equal(t, "2026-02-05", banner.Day)
	assert.Equal(t, int64(30*60*1000), banner.MsUntilReset)
	assert.Equal(t, "30 menit lagi", banner.CountdownText)
}
