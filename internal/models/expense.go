package models

import "time"

// Expense is a payment made by one member on behalf of a set of participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group the expense belongs to.
	GroupID string

	// CreatedBy is the user who recorded the expense.
	CreatedBy string

	// PayerUserID is the member who paid.
	PayerUserID string

	Title string
	Notes string

	// TotalAmount is the full amount paid, before any installment split.
	TotalAmount float64

	// ExpenseDate is the day the expense happened (date only, UTC).
	ExpenseDate time.Time

	// IsInstallment marks expenses spread over InstallmentMonths months starting
	// at InstallmentStartMonth (YYYY-MM-01).
	IsInstallment         bool
	InstallmentMonths     int
	InstallmentStartMonth string

	// ParticipantIDs are the members sharing the cost, equally.
	ParticipantIDs []string

	// Occurrences are the monthly amounts generated from the schedule.
	Occurrences []ExpenseOccurrence

	CreatedAt int64
	UpdatedAt int64
}

// ExpenseOccurrence is the amount of an expense that falls in one month.
type ExpenseOccurrence struct {
	ID        string
	ExpenseID string
	Month     string // First day of the month, YYYY-MM-01
	Amount    float64
	CreatedAt int64
}

// OccurrenceDetail is an occurrence joined with its expense's payer and participants.
type OccurrenceDetail struct {
	ExpenseID          string
	Title              string
	Amount             float64
	PayerUserID        string
	ParticipantUserIDs []string
}
