package domain

import "time"

// Enumerations
const (
	RoleManager      UserRole = "manager"
	RoleReceptionist UserRole = "receptionist"

	StatusActive       MemberStatus = "Active"
	StatusExpiringSoon MemberStatus = "Expiring Soon"
	StatusExpired      MemberStatus = "Expired"

	PayCash        PaymentMethod = "Cash"
	PayMobileMoney PaymentMethod = "Mobile Money"

	CategoryNormal MembershipCategory = "Normal Membership"
	CategoryGroup  MembershipCategory = "Group Membership"

	DurationWeekly  BillingDuration = "Weekly"
	DurationMonthly BillingDuration = "Monthly"
	DurationQuarter BillingDuration = "3 Months"
	DurationAnnual  BillingDuration = "Annual"
)

type UserRole string
type MemberStatus string
type PaymentMethod string
type MembershipCategory string
type BillingDuration string

// ExpenseCategories is the accepted category set for expense records.
var ExpenseCategories = []string{
	"Rent", "Utilities", "Maintenance", "Salaries", "Supplies", "Marketing", "Other",
}

type Branch struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"branch_code"`
}

type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	BranchID *string  `json:"branch_id,omitempty"`
}

type Member struct {
	ID         string             `json:"id"`
	MemberCode string             `json:"member_code"`
	BranchID   string             `json:"branch_id"`
	BranchCode string             `json:"branch_code"`
	FullName   string             `json:"full_name"`
	Phone      string             `json:"phone"`
	Email      *string            `json:"email,omitempty"`
	Category   MembershipCategory `json:"category"`
	Duration   BillingDuration    `json:"duration"`
	StartDate  string             `json:"start_date"`
	ExpiryDate string             `json:"expiry_date"`
	PictureURL *string            `json:"picture_url,omitempty"`
	Status     MemberStatus       `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
}

type Payment struct {
	ID              string        `json:"id"`
	MemberID        string        `json:"member_id"`
	Amount          int64         `json:"amount"`
	Method          PaymentMethod `json:"payment_method"`
	TransactionDate time.Time     `json:"transaction_date"`
}

type Expense struct {
	ID          string        `json:"id"`
	BranchID    string        `json:"branch_id"`
	Amount      int64         `json:"amount"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Method      PaymentMethod `json:"payment_method"`
	ExpenseDate time.Time     `json:"expense_date"`
	RecordedBy  string        `json:"recorded_by"`
}

// AttendanceToday is the shape returned by GET /attendance/today.
type AttendanceToday struct {
	Count        int      `json:"count"`
	CheckedInIDs []string `json:"checkedInIds"`
}

// ExpiryThresholdDays is the remaining-validity window, in whole days, that
// marks a membership as Expiring Soon.
const ExpiryThresholdDays = 7

// StatusAt derives the membership status from the expiry date. The expiry day
// itself still counts as valid; day arithmetic is done in UTC at day
// granularity so the time of day never shifts the status.
func StatusAt(expiryDate string, now time.Time) MemberStatus {
	expiry, err := time.ParseInLocation("2006-01-02", expiryDate, time.UTC)
	if err != nil {
		return StatusExpired
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysLeft := int(expiry.Sub(today).Hours() / 24)
	switch {
	case daysLeft < 0:
		return StatusExpired
	case daysLeft <= ExpiryThresholdDays:
		return StatusExpiringSoon
	default:
		return StatusActive
	}
}
