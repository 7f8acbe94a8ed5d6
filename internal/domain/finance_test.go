package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func pay(amount int64, method PaymentMethod, at time.Time) Payment {
	return Payment{ID: "p", MemberID: "m", Amount: amount, Method: method, TransactionDate: at}
}

func spend(amount int64, category string, at time.Time) Expense {
	return Expense{ID: "e", BranchID: "b", Amount: amount, Category: category, ExpenseDate: at}
}

func TestAggregateFinanceTotals(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	payments := []Payment{
		pay(10000, PayCash, now),
		pay(20000, PayMobileMoney, now),
		pay(5000, PayMobileMoney, now),
	}

	stats := AggregateFinance(payments, nil, now)

	assert.Equal(t, int64(35000), stats.Revenue)
	assert.Equal(t, int64(0), stats.Expenses)
	assert.Equal(t, int64(35000), stats.NetProfit)
	assert.Equal(t, 3, stats.Transactions)
	assert.Equal(t, int64(25000), stats.MobileRevenue)
	assert.Equal(t, int64(10000), stats.CashRevenue)

	require.Len(t, stats.DailyData, DailyWindow)
	last := stats.DailyData[DailyWindow-1]
	assert.Equal(t, now.Format("2006-01-02"), last.Date)
	assert.Equal(t, 35.0, last.Revenue)
}

func TestMonthlySeriesShape(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	// No history at all still yields a full, zeroed series.
	stats := AggregateFinance(nil, nil, now)
	require.Len(t, stats.MonthlyData, MonthlyWindow)
	for _, b := range stats.MonthlyData {
		assert.Zero(t, b.Revenue)
		assert.Zero(t, b.Expenses)
	}
	// Oldest-first, ending at the current month: Nov 2025 .. Aug 2026.
	assert.Equal(t, "N", stats.MonthlyData[0].Month)
	assert.Equal(t, "A", stats.MonthlyData[MonthlyWindow-1].Month)
}

func TestMonthlyBucketMembership(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	payments := []Payment{
		pay(4000, PayCash, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		pay(6000, PayCash, time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC)),
		// Same calendar month, previous year: must not land in the August bucket.
		pay(9000, PayCash, time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)),
	}
	stats := AggregateFinance(payments, nil, now)

	august := stats.MonthlyData[MonthlyWindow-1]
	july := stats.MonthlyData[MonthlyWindow-2]
	assert.Equal(t, 4.0, august.Revenue)
	assert.Equal(t, 6.0, july.Revenue)
}

// Every payment lands in exactly one month bucket (or none, when it predates
// the window), so the series never double-counts.
func TestMonthlyNoDoubleCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		// Whole thousands keep the scaled series exact.
		amount := int64(rapid.IntRange(1, 500).Draw(t, "amount")) * 1000
		daysBack := rapid.IntRange(0, 600).Draw(t, "daysBack")
		at := now.AddDate(0, 0, -daysBack)

		stats := AggregateFinance([]Payment{pay(amount, PayCash, at)}, nil, now)

		var sum float64
		for _, b := range stats.MonthlyData {
			sum += b.Revenue
		}
		windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(MonthlyWindow - 1), 0)
		if at.Before(windowStart) {
			if sum != 0 {
				t.Fatalf("payment outside window counted: sum=%v", sum)
			}
		} else if sum != float64(amount)/1000 {
			t.Fatalf("payment counted %v times", sum/(float64(amount)/1000))
		}
	})
}

func TestExpenseCategorySplit(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	expenses := []Expense{
		spend(3000, "Rent", now),
		spend(2000, "Rent", now),
		spend(1500, "Utilities", now),
	}
	stats := AggregateFinance(nil, expenses, now)

	assert.Equal(t, int64(6500), stats.Expenses)
	assert.Equal(t, int64(-6500), stats.NetProfit)
	assert.Equal(t, int64(5000), stats.ExpenseCategories["Rent"])
	assert.Equal(t, int64(1500), stats.ExpenseCategories["Utilities"])
}

func TestShareGuardsDivideByZero(t *testing.T) {
	stats := AggregateFinance(nil, nil, time.Now())
	assert.Equal(t, 0.0, stats.MobileSharePercent())
	assert.Equal(t, 0.0, stats.CashSharePercent())

	stats = AggregateFinance([]Payment{pay(4000, PayMobileMoney, time.Now())}, nil, time.Now())
	assert.InDelta(t, 100.0, stats.MobileSharePercent(), 0.001)
	assert.Equal(t, 0.0, stats.CashSharePercent())
}

func TestDailySeriesAlwaysSevenBuckets(t *testing.T) {
	now := time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)
	stats := AggregateFinance([]Payment{
		pay(2000, PayCash, now.AddDate(0, 0, -6)),
		pay(3000, PayCash, now.AddDate(0, 0, -7)), // outside the window
	}, nil, now)

	require.Len(t, stats.DailyData, DailyWindow)
	assert.Equal(t, now.AddDate(0, 0, -6).Format("2006-01-02"), stats.DailyData[0].Date)
	assert.Equal(t, 2.0, stats.DailyData[0].Revenue)

	var total float64
	for _, b := range stats.DailyData {
		total += b.Revenue
	}
	assert.Equal(t, 2.0, total)
}
