package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/hanekasa/internal/calculator"
	"github.com/mmynk/hanekasa/internal/events"
	"github.com/mmynk/hanekasa/internal/models"
	"github.com/mmynk/hanekasa/internal/schedule"
	"github.com/mmynk/hanekasa/internal/storage"
	"github.com/mmynk/hanekasa/pkg/api"
)

const maxTitleLength = 200

var (
	ErrTitleEmpty         = errors.New("title is required")
	ErrTitleTooLong       = fmt.Errorf("title must be at most %d characters", maxTitleLength)
	ErrNoParticipants     = errors.New("at least one participant is required")
	ErrPayerNotMember     = errors.New("payer is not a member of this group")
	ErrParticipantUnknown = errors.New("participant is not a member of this group")
	ErrInvalidDate        = errors.New("expense_date must be YYYY-MM-DD")
)

var _ api.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService implements the ExpenseService RPC interface.
type ExpenseService struct {
	store     storage.Store
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewExpenseService creates an ExpenseService. A nil publisher disables events.
func NewExpenseService(store storage.Store, publisher events.Publisher, logger *slog.Logger) *ExpenseService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ExpenseService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateExpense validates and records an expense together with its monthly
// occurrences, then announces it on the event bus.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	msg := req.Msg
	userID, err := requireMember(ctx, s.store, msg.GroupID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateExpense request", "group_id", msg.GroupID, "user_id", userID, "amount", msg.TotalAmount)

	title := strings.TrimSpace(msg.Title)
	if title == "" {
		return nil, invalidArgument(ErrTitleEmpty)
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, invalidArgument(ErrTitleTooLong)
	}
	if msg.TotalAmount <= 0 || math.IsNaN(msg.TotalAmount) || math.IsInf(msg.TotalAmount, 0) {
		return nil, invalidArgument(schedule.ErrInvalidAmount)
	}

	expenseDate, err := s.parseDate(msg.ExpenseDate)
	if err != nil {
		return nil, invalidArgument(err)
	}

	members, err := s.store.ListGroupMembers(ctx, msg.GroupID)
	if err != nil {
		return nil, storageError(err)
	}
	isMember := make(map[string]bool, len(members))
	for _, m := range members {
		isMember[m.UserID] = true
	}

	payer := msg.PayerUserID
	if payer == "" {
		payer = userID
	}
	if !isMember[payer] {
		return nil, invalidArgument(ErrPayerNotMember)
	}

	participants := dedupe(msg.ParticipantIDs)
	if len(participants) == 0 {
		return nil, invalidArgument(ErrNoParticipants)
	}
	for _, id := range participants {
		if !isMember[id] {
			return nil, invalidArgument(fmt.Errorf("%w: %s", ErrParticipantUnknown, id))
		}
	}

	plan := schedule.Plan{
		Total:       calculator.Round2(msg.TotalAmount),
		ExpenseDate: expenseDate,
		Installment: msg.IsInstallment,
		Months:      msg.InstallmentMonths,
	}
	if msg.IsInstallment && msg.InstallmentStartMonth != "" {
		plan.StartMonth, err = schedule.ParseMonth(msg.InstallmentStartMonth)
		if err != nil {
			return nil, invalidArgument(err)
		}
	}
	installments, err := plan.Installments()
	if err != nil {
		return nil, invalidArgument(err)
	}

	expense := &models.Expense{
		GroupID:        msg.GroupID,
		CreatedBy:      userID,
		PayerUserID:    payer,
		Title:          title,
		Notes:          strings.TrimSpace(msg.Notes),
		TotalAmount:    plan.Total,
		ExpenseDate:    expenseDate,
		IsInstallment:  msg.IsInstallment,
		ParticipantIDs: participants,
	}
	if msg.IsInstallment {
		expense.InstallmentMonths = len(installments)
		expense.InstallmentStartMonth = installments[0].Month.FirstDay()
	} else {
		expense.InstallmentMonths = 1
	}
	months := make([]string, 0, len(installments))
	for _, inst := range installments {
		expense.Occurrences = append(expense.Occurrences, models.ExpenseOccurrence{
			Month:  inst.Month.FirstDay(),
			Amount: inst.Amount,
		})
		months = append(months, inst.Month.String())
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		s.logger.Error("Failed to save expense", "group_id", msg.GroupID, "error", err)
		return nil, storageError(err)
	}

	event := events.ExpenseCreated{
		ExpenseID:   expense.ID,
		GroupID:     expense.GroupID,
		PayerUserID: expense.PayerUserID,
		TotalAmount: expense.TotalAmount,
		Months:      months,
		Timestamp:   s.now().UTC(),
	}
	if err := s.publisher.PublishExpenseCreated(ctx, event); err != nil {
		s.logger.Warn("Failed to publish expense event", "expense_id", expense.ID, "error", err)
	}

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// GetExpense returns one expense with its occurrences.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	expense, err := s.memberExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// ListExpenses returns the group's expenses, newest first, with payer names.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if _, err := requireMember(ctx, s.store, req.Msg.GroupID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		s.logger.Error("Failed to list expenses", "group_id", req.Msg.GroupID, "error", err)
		return nil, storageError(err)
	}
	members, err := s.store.ListGroupMembers(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, storageError(err)
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.UserID] = m.DisplayName
	}

	out := make([]*api.Expense, 0, len(expenses))
	for _, e := range expenses {
		exp := expenseToAPI(e)
		exp.PayerName = names[e.PayerUserID]
		out = append(out, exp)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes an expense. Only the member who recorded it may delete it.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	expense, err := s.memberExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, err
	}

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if expense.CreatedBy != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, ErrNotCreator)
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		s.logger.Error("Failed to delete expense", "expense_id", expense.ID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Expense deleted", "expense_id", expense.ID, "user_id", userID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// memberExpense loads an expense and checks the caller belongs to its group.
func (s *ExpenseService) memberExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}
	if expenseID == "" {
		return nil, invalidArgument(errors.New("expense_id is required"))
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, storageError(err)
	}
	if _, err := requireMember(ctx, s.store, expense.GroupID); err != nil {
		return nil, err
	}
	return expense, nil
}

// parseDate parses a YYYY-MM-DD date; empty means today.
func (s *ExpenseService) parseDate(value string) (time.Time, error) {
	if value == "" {
		y, m, d := s.now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// dedupe drops empty and repeated ids, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
