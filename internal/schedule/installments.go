package schedule

import (
	"errors"
	"time"

	"github.com/mmynk/hanekasa/internal/calculator"
)

// MaxInstallmentMonths caps how far an expense may be spread.
const MaxInstallmentMonths = 60

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrInvalidMonths = errors.New("installment months must be between 1 and 60")
)

// Installment is the amount of an expense due in one month.
type Installment struct {
	Month  Month
	Amount float64
}

// BuildInstallments spreads total over months consecutive months starting at start.
// Every installment is total/months rounded to two decimals; the rounding remainder
// is not redistributed.
func BuildInstallments(total float64, start Month, months int) ([]Installment, error) {
	if total <= 0 {
		return nil, ErrInvalidAmount
	}
	if months < 1 || months > MaxInstallmentMonths {
		return nil, ErrInvalidMonths
	}

	perMonth := calculator.Round2(total / float64(months))
	installments := make([]Installment, months)
	for i := range installments {
		installments[i] = Installment{
			Month:  start.AddMonths(i),
			Amount: perMonth,
		}
	}
	return installments, nil
}

// Plan describes how an expense is spread over time.
type Plan struct {
	Total       float64
	ExpenseDate time.Time
	Installment bool
	Months      int
	StartMonth  Month // Used only for installment plans
}

// Installments returns the occurrences for the plan. A one-off expense falls
// entirely in the month of its date.
func (p Plan) Installments() ([]Installment, error) {
	if !p.Installment {
		return BuildInstallments(p.Total, MonthOf(p.ExpenseDate), 1)
	}
	start := p.StartMonth
	if start.IsZero() {
		start = MonthOf(p.ExpenseDate)
	}
	return BuildInstallments(p.Total, start, p.Months)
}
