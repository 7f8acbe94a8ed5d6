package domain

import (
	"math"
	"time"
)

const (
	// MonthlyWindow is the number of calendar months charted, ending at the
	// current month.
	MonthlyWindow = 10
	// DailyWindow is the number of calendar days charted, ending today.
	DailyWindow = 7
)

// MonthBucket is one point of the monthly revenue chart. Amounts are scaled
// to thousands of RWF.
type MonthBucket struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// DayBucket is one point of the daily chart, keyed by UTC calendar day.
// Amounts are scaled to thousands of RWF.
type DayBucket struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// FinanceStats is the aggregate served by GET /finance/stats.
type FinanceStats struct {
	Revenue           int64            `json:"revenue"`
	Expenses          int64            `json:"expenses"`
	NetProfit         int64            `json:"netProfit"`
	Transactions      int              `json:"transactions"`
	MobileRevenue     int64            `json:"mobileRevenue"`
	CashRevenue       int64            `json:"cashRevenue"`
	MonthlyData       []MonthBucket    `json:"monthlyData"`
	DailyData         []DayBucket      `json:"dailyData"`
	ExpenseCategories map[string]int64 `json:"expenseCategories"`
}

// MobileSharePercent is the Mobile Money share of revenue. Zero revenue
// reports zero, never NaN.
func (s FinanceStats) MobileSharePercent() float64 {
	if s.Revenue == 0 {
		return 0
	}
	return float64(s.MobileRevenue) / float64(s.Revenue) * 100
}

// CashSharePercent is the cash share of revenue.
func (s FinanceStats) CashSharePercent() float64 {
	if s.Revenue == 0 {
		return 0
	}
	return float64(s.CashRevenue) / float64(s.Revenue) * 100
}

// AggregateFinance folds raw payment and expense collections into the chart
// and KPI aggregates. All calendar bucketing is done in UTC: an item belongs
// to a month bucket iff its UTC month and year match, and to a day bucket iff
// its UTC yyyy-mm-dd string matches.
func AggregateFinance(payments []Payment, expenses []Expense, now time.Time) FinanceStats {
	now = now.UTC()
	stats := FinanceStats{
		Transactions:      len(payments),
		ExpenseCategories: make(map[string]int64),
	}

	for _, p := range payments {
		stats.Revenue += p.Amount
		switch p.Method {
		case PayMobileMoney:
			stats.MobileRevenue += p.Amount
		case PayCash:
			stats.CashRevenue += p.Amount
		}
	}
	for _, e := range expenses {
		stats.Expenses += e.Amount
		stats.ExpenseCategories[e.Category] += e.Amount
	}
	stats.NetProfit = stats.Revenue - stats.Expenses

	stats.MonthlyData = monthlySeries(payments, expenses, now)
	stats.DailyData = dailySeries(payments, expenses, now)
	return stats
}

// monthlySeries always yields exactly MonthlyWindow buckets, oldest first,
// zero-filled for months with no records.
func monthlySeries(payments []Payment, expenses []Expense, now time.Time) []MonthBucket {
	buckets := make([]MonthBucket, 0, MonthlyWindow)
	for i := MonthlyWindow - 1; i >= 0; i-- {
		target := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		var revenue, spent int64
		for _, p := range payments {
			if sameMonth(p.TransactionDate, target) {
				revenue += p.Amount
			}
		}
		for _, e := range expenses {
			if sameMonth(e.ExpenseDate, target) {
				spent += e.Amount
			}
		}
		buckets = append(buckets, MonthBucket{
			Month:    target.Month().String()[:1],
			Revenue:  thousands(revenue),
			Expenses: thousands(spent),
			Profit:   thousands(revenue - spent),
		})
	}
	return buckets
}

// dailySeries always yields exactly DailyWindow buckets, oldest first.
func dailySeries(payments []Payment, expenses []Expense, now time.Time) []DayBucket {
	buckets := make([]DayBucket, 0, DailyWindow)
	for i := DailyWindow - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		var revenue, spent int64
		for _, p := range payments {
			if p.TransactionDate.UTC().Format("2006-01-02") == day {
				revenue += p.Amount
			}
		}
		for _, e := range expenses {
			if e.ExpenseDate.UTC().Format("2006-01-02") == day {
				spent += e.Amount
			}
		}
		buckets = append(buckets, DayBucket{
			Date:     day,
			Revenue:  thousands(revenue),
			Expenses: thousands(spent),
			Profit:   thousands(revenue - spent),
		})
	}
	return buckets
}

func sameMonth(t, target time.Time) bool {
	t = t.UTC()
	return t.Year() == target.Year() && t.Month() == target.Month()
}

func thousands(amount int64) float64 {
	return math.Round(float64(amount)/1000*10) / 10
}
