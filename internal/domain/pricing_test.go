package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		category MembershipCategory
		duration BillingDuration
		want     int64
	}{
		{CategoryNormal, DurationMonthly, 30000},
		{CategoryNormal, DurationWeekly, 10000},
		{CategoryNormal, DurationQuarter, 81000},  // 90000 - 10%
		{CategoryNormal, DurationAnnual, 288000},  // 360000 - 20%
		{CategoryGroup, DurationMonthly, 20000},
		{CategoryGroup, DurationWeekly, 6667},
		{CategoryGroup, DurationQuarter, 54000},
		{CategoryGroup, DurationAnnual, 192000},
		{"Unknown Tier", DurationMonthly, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Price(tt.category, tt.duration), "%s/%s", tt.category, tt.duration)
	}
}

func TestMembershipDays(t *testing.T) {
	assert.Equal(t, 7, MembershipDays(DurationWeekly))
	assert.Equal(t, 30, MembershipDays(DurationMonthly))
	assert.Equal(t, 90, MembershipDays(DurationQuarter))
	assert.Equal(t, 365, MembershipDays(DurationAnnual))
	assert.Equal(t, 30, MembershipDays("whatever"))
}
