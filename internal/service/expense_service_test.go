package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/hanekasa/pkg/api"
)

func TestExpenseService_CreateInstallment(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	ayse := env.register(t, "ayse@example.com", "Ayşe")
	burak := env.register(t, "burak@example.com", "Burak")
	groupID := env.household(t, "Ev", ayse, burak)

	resp, err := env.expenses.CreateExpense(ctx, as(ayse, &api.CreateExpenseRequest{
		GroupID:               groupID,
		PayerUserID:           burak.user.ID,
		Title:                 " Buzdolabı ",
		TotalAmount:           1000,
		ExpenseDate:           "2025-11-20",
		ParticipantIDs:        []string{ayse.user.ID, burak.user.ID, ayse.user.ID},
		IsInstallment:         true,
		InstallmentMonths:     3,
		InstallmentStartMonth: "2025-12",
	}))
	require.NoError(t, err)

	exp := resp.Msg.Expense
	assert.Equal(t, "Buzdolabı", exp.Title)
	assert.Equal(t, ayse.user.ID, exp.CreatedBy)
	assert.Equal(t, burak.user.ID, exp.PayerUserID)
	assert.Equal(t, []string{ayse.user.ID, burak.user.ID}, exp.ParticipantIDs)
	assert.Equal(t, "2025-12", exp.InstallmentStartMonth)
	require.Len(t, exp.Occurrences, 3)
	assert.Equal(t, "2025-12", exp.Occurrences[0].Month)
	assert.Equal(t, "2026-01", exp.Occurrences[1].Month)
	assert.Equal(t, "2026-02", exp.Occurrences[2].Month)
	for _, o := range exp.Occurrences {
		assert.InDelta(t, 333.33, o.Amount, 0.001)
	}

	published := env.publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, exp.ID, published[0].ExpenseID)
	assert.Equal(t, []string{"2025-12", "2026-01", "2026-02"}, published[0].Months)

	got, err := env.expenses.GetExpense(ctx, as(burak, &api.GetExpenseRequest{ExpenseID: exp.ID}))
	require.NoError(t, err)
	assert.Len(t, got.Msg.Expense.Occurrences, 3)
	assert.Equal(t, "2025-11-20", got.Msg.Expense.ExpenseDate)
}

func TestExpenseService_CreateDefaults(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	ayse := env.register(t, "ayse@example.com", "Ayşe")
	groupID := env.household(t, "Ev", ayse)

	resp, err := env.expenses.CreateExpense(ctx, as(ayse, &api.CreateExpenseRequest{
		GroupID:        groupID,
		Title:          "Market",
		TotalAmount:    120.456,
		ExpenseDate:    "2026-02-14",
		ParticipantIDs: []string{ayse.user.ID},
	}))
	require.NoError(t, err)

	exp := resp.Msg.Expense
	assert.Equal(t, ayse.user.ID, exp.PayerUserID)
	assert.InDelta(t, 120.46, exp.TotalAmount, 0.001)
	assert.False(t, exp.IsInstallment)
	assert.Equal(t, 1, exp.InstallmentMonths)
	require.Len(t, exp.Occurrences, 1)
	assert.Equal(t, "2026-02", exp.Occurrences[0].Month)
}

func TestExpenseService_Validation(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	ayse := env.register(t, "ayse@example.com", "Ayşe")
	outsider := env.register(t, "outsider@example.com", "Outsider")
	groupID := env.household(t, "Ev", ayse)

	valid := func() *api.CreateExpenseRequest {
		return &api.CreateExpenseRequest{
			GroupID:        groupID,
			Title:          "Kira",
			TotalAmount:    100,
			ExpenseDate:    "2026-02-01",
			ParticipantIDs: []string{ayse.user.ID},
		}
	}

	tests := []struct {
		name   string
		mutate func(*api.CreateExpenseRequest)
		code   connect.Code
	}{
		{"empty title", func(r *api.CreateExpenseRequest) { r.Title = "  " }, connect.CodeInvalidArgument},
		{"zero amount", func(r *api.CreateExpenseRequest) { r.TotalAmount = 0 }, connect.CodeInvalidArgument},
		{"negative amount", func(r *api.CreateExpenseRequest) { r.TotalAmount = -5 }, connect.CodeInvalidArgument},
		{"bad date", func(r *api.CreateExpenseRequest) { r.ExpenseDate = "01/02/2026" }, connect.CodeInvalidArgument},
		{"no participants", func(r *api.CreateExpenseRequest) { r.ParticipantIDs = nil }, connect.CodeInvalidArgument},
		{"non-member participant", func(r *api.CreateExpenseRequest) {
			r.ParticipantIDs = []string{ayse.user.ID, outsider.user.ID}
		}, connect.CodeInvalidArgument},
		{"non-member payer", func(r *api.CreateExpenseRequest) { r.PayerUserID = outsider.user.ID }, connect.CodeInvalidArgument},
		{"zero installment months", func(r *api.CreateExpenseRequest) { r.IsInstallment = true }, connect.CodeInvalidArgument},
		{"too many installment months", func(r *api.CreateExpenseRequest) {
			r.IsInstallment = true
			r.InstallmentMonths = 61
		}, connect.CodeInvalidArgument},
		{"bad start month", func(r *api.CreateExpenseRequest) {
			r.IsInstallment = true
			r.InstallmentMonths = 2
			r.InstallmentStartMonth = "2026-13"
		}, connect.CodeInvalidArgument},
		{"unknown group", func(r *api.CreateExpenseRequest) { r.GroupID = "missing" }, connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			_, err := env.expenses.CreateExpense(ctx, as(ayse, req))
			requireCode(t, err, tt.code)
		})
	}

	_, err := env.expenses.CreateExpense(ctx, as(outsider, valid()))
	requireCode(t, err, connect.CodePermissionDenied)

	assert.Empty(t, env.publisher.published())
}

func TestExpenseService_ListAndDelete(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	ayse := env.register(t, "ayse@example.com", "Ayşe")
	burak := env.register(t, "burak@example.com", "Burak")
	outsider := env.register(t, "outsider@example.com", "Outsider")
	groupID := env.household(t, "Ev", ayse, burak)

	both := []string{ayse.user.ID, burak.user.ID}
	first, err := env.expenses.CreateExpense(ctx, as(ayse, &api.CreateExpenseRequest{
		GroupID: groupID, Title: "Elektrik", TotalAmount: 80, ExpenseDate: "2026-01-10", ParticipantIDs: both,
	}))
	require.NoError(t, err)
	_, err = env.expenses.CreateExpense(ctx, as(burak, &api.CreateExpenseRequest{
		GroupID: groupID, Title: "Su", TotalAmount: 40, ExpenseDate: "2026-01-20", ParticipantIDs: both,
	}))
	require.NoError(t, err)

	list, err := env.expenses.ListExpenses(ctx, as(ayse, &api.ListExpensesRequest{GroupID: groupID}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Expenses, 2)
	assert.Equal(t, "Su", list.Msg.Expenses[0].Title)
	assert.Equal(t, "Burak", list.Msg.Expenses[0].PayerName)
	assert.Equal(t, "Elektrik", list.Msg.Expenses[1].Title)

	_, err = env.expenses.ListExpenses(ctx, as(outsider, &api.ListExpensesRequest{GroupID: groupID}))
	requireCode(t, err, connect.CodePermissionDenied)

	expenseID := first.Msg.Expense.ID

	_, err = env.expenses.GetExpense(ctx, as(outsider, &api.GetExpenseRequest{ExpenseID: expenseID}))
	requireCode(t, err, connect.CodePermissionDenied)

	_, err = env.expenses.DeleteExpense(ctx, as(burak, &api.DeleteExpenseRequest{ExpenseID: expenseID}))
	requireCode(t, err, connect.CodePermissionDenied)

	_, err = env.expenses.DeleteExpense(ctx, as(ayse, &api.DeleteExpenseRequest{ExpenseID: expenseID}))
	require.NoError(t, err)

	_, err = env.expenses.GetExpense(ctx, as(ayse, &api.GetExpenseRequest{ExpenseID: expenseID}))
	requireCode(t, err, connect.CodeNotFound)

	_, err = env.expenses.DeleteExpense(ctx, as(ayse, &api.DeleteExpenseRequest{ExpenseID: expenseID}))
	requireCode(t, err, connect.CodeNotFound)
}
