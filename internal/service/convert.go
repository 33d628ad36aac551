package service

import (
	"github.com/mmynk/hanekasa/internal/models"
	"github.com/mmynk/hanekasa/internal/schedule"
	"github.com/mmynk/hanekasa/pkg/api"
)

const dateLayout = "2006-01-02"

func userToAPI(user *models.User) *api.User {
	return &api.User{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}

func groupToAPI(group *models.Group) *api.Group {
	return &api.Group{
		ID:        group.ID,
		Name:      group.Name,
		CreatedAt: group.CreatedAt,
	}
}

func membersToAPI(members []*models.GroupMember) []*api.Member {
	out := make([]*api.Member, 0, len(members))
	for _, m := range members {
		out = append(out, &api.Member{
			UserID:      m.UserID,
			Email:       m.Email,
			DisplayName: m.DisplayName,
		})
	}
	return out
}

// monthLabel turns a stored YYYY-MM-01 month into YYYY-MM.
func monthLabel(stored string) string {
	m, err := schedule.ParseMonth(stored)
	if err != nil {
		return stored
	}
	return m.String()
}

func expenseToAPI(expense *models.Expense) *api.Expense {
	out := &api.Expense{
		ID:                expense.ID,
		GroupID:           expense.GroupID,
		CreatedBy:         expense.CreatedBy,
		PayerUserID:       expense.PayerUserID,
		Title:             expense.Title,
		Notes:             expense.Notes,
		TotalAmount:       expense.TotalAmount,
		ExpenseDate:       expense.ExpenseDate.Format(dateLayout),
		IsInstallment:     expense.IsInstallment,
		InstallmentMonths: expense.InstallmentMonths,
		ParticipantIDs:    expense.ParticipantIDs,
		CreatedAt:         expense.CreatedAt,
	}
	if expense.InstallmentStartMonth != "" {
		out.InstallmentStartMonth = monthLabel(expense.InstallmentStartMonth)
	}
	for _, o := range expense.Occurrences {
		out.Occurrences = append(out.Occurrences, &api.Occurrence{
			Month:  monthLabel(o.Month),
			Amount: o.Amount,
		})
	}
	return out
}
