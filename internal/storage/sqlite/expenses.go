package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/hanekasa/internal/models"
	"github.com/mmynk/hanekasa/internal/schedule"
	"github.com/mmynk/hanekasa/internal/storage"
)

const dateLayout = "2006-01-02"

// CreateExpense persists an expense with its participants and occurrences.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	now := time.Now().Unix()
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = expense.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var notes, startMonth any
	if expense.Notes != "" {
		notes = expense.Notes
	}
	if expense.InstallmentStartMonth != "" {
		startMonth = expense.InstallmentStartMonth
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, created_by, payer_user_id, title, notes, total_amount,
		 expense_date, is_installment, installment_months, installment_start_month, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.CreatedBy, expense.PayerUserID, expense.Title, notes,
		expense.TotalAmount, expense.ExpenseDate.Format(dateLayout), expense.IsInstallment,
		expense.InstallmentMonths, startMonth, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, userID := range expense.ParticipantIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, user_id) VALUES (?, ?)",
			expense.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for i := range expense.Occurrences {
		occ := &expense.Occurrences[i]
		if occ.ID == "" {
			occ.ID = uuid.New().String()
		}
		if occ.CreatedAt == 0 {
			occ.CreatedAt = now
		}
		occ.ExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_occurrences (id, expense_id, month, amount, created_at) VALUES (?, ?, ?, ?, ?)",
			occ.ID, occ.ExpenseID, occ.Month, occ.Amount, occ.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert occurrence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"total_amount", expense.TotalAmount,
		"occurrences", len(expense.Occurrences),
	)

	return nil
}

const expenseColumns = `id, group_id, created_by, payer_user_id, title, notes, total_amount,
	expense_date, is_installment, installment_months, installment_start_month, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var (
		notes, startMonth sql.NullString
		expenseDate       string
	)
	err := row.Scan(&expense.ID, &expense.GroupID, &expense.CreatedBy, &expense.PayerUserID,
		&expense.Title, &notes, &expense.TotalAmount, &expenseDate, &expense.IsInstallment,
		&expense.InstallmentMonths, &startMonth, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return nil, err
	}

	expense.Notes = notes.String
	expense.InstallmentStartMonth = startMonth.String
	expense.ExpenseDate, err = time.Parse(dateLayout, expenseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid expense date %q: %w", expenseDate, err)
	}
	return expense, nil
}

// GetExpense retrieves an expense by ID, including participants and occurrences.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?",
		expenseID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	participants, err := s.participantsByExpense(ctx, []string{expense.ID})
	if err != nil {
		return nil, err
	}
	expense.ParticipantIDs = participants[expense.ID]

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, expense_id, month, amount, created_at FROM expense_occurrences WHERE expense_id = ? ORDER BY month",
		expense.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get occurrences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var occ models.ExpenseOccurrence
		if err := rows.Scan(&occ.ID, &occ.ExpenseID, &occ.Month, &occ.Amount, &occ.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan occurrence: %w", err)
		}
		expense.Occurrences = append(expense.Occurrences, occ)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate occurrences: %w", err)
	}

	return expense, nil
}

// ListExpensesByGroup retrieves a group's expenses with their participants.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE group_id = ? ORDER BY expense_date DESC, created_at DESC, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var (
		expenses []*models.Expense
		ids      []string
	)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
		ids = append(ids, expense.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	participants, err := s.participantsByExpense(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, expense := range expenses {
		expense.ParticipantIDs = participants[expense.ID]
	}

	return expenses, nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}

	return nil
}

// ListOccurrencesForMonth retrieves the occurrences of a group's expenses in month,
// joined with payer and participants, ordered by expense date.
func (s *SQLiteStore) ListOccurrencesForMonth(ctx context.Context, groupID string, month schedule.Month) ([]models.OccurrenceDetail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT o.expense_id, e.title, o.amount, e.payer_user_id
		 FROM expense_occurrences o
		 JOIN expenses e ON e.id = o.expense_id
		 WHERE e.group_id = ? AND o.month >= ? AND o.month < ?
		 ORDER BY e.expense_date, e.created_at, o.id`,
		groupID, month.FirstDay(), month.Next().FirstDay(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list occurrences: %w", err)
	}
	defer rows.Close()

	var (
		details []models.OccurrenceDetail
		ids     []string
	)
	for rows.Next() {
		var d models.OccurrenceDetail
		if err := rows.Scan(&d.ExpenseID, &d.Title, &d.Amount, &d.PayerUserID); err != nil {
			return nil, fmt.Errorf("failed to scan occurrence: %w", err)
		}
		details = append(details, d)
		ids = append(ids, d.ExpenseID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate occurrences: %w", err)
	}

	participants, err := s.participantsByExpense(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range details {
		details[i].ParticipantUserIDs = participants[details[i].ExpenseID]
	}

	return details, nil
}

// participantsByExpense returns participant user IDs keyed by expense ID.
func (s *SQLiteStore) participantsByExpense(ctx context.Context, expenseIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return result, nil
	}

	args := make([]any, len(expenseIDs))
	for i, id := range expenseIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, user_id FROM expense_participants WHERE expense_id IN ("+placeholders(len(args))+") ORDER BY user_id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, userID string
		if err := rows.Scan(&expenseID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		result[expenseID] = append(result[expenseID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return result, nil
}
