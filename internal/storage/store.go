// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/hanekasa/internal/models"
	"github.com/mmynk/hanekasa/internal/schedule"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique record is inserted twice.
	ErrAlreadyExists = errors.New("already exists")
)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	GroupStore
	ExpenseStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a user. Returns ErrAlreadyExists for a duplicate email.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns ErrNotFound if no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// GroupStore persists groups and their members.
type GroupStore interface {
	// CreateGroup persists a new group; ID and CreatedAt are filled in when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsForUser returns the groups the user belongs to, by name.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMember adds a user to a group. Returns ErrAlreadyExists if the user
	// is already a member.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// ListGroupMembers returns members ordered by display name, then user ID.
	ListGroupMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error)

	IsGroupMember(ctx context.Context, groupID, userID string) (bool, error)
}

// ExpenseStore persists expenses with their participants and occurrences.
type ExpenseStore interface {
	// CreateExpense persists the expense, its participants and its occurrences
	// atomically. IDs and timestamps are filled in when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense returns the expense with participants and occurrences.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns expenses, newest expense date first.
	// Occurrences are not loaded.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes the expense together with its participants and occurrences.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListOccurrencesForMonth returns the group's occurrences falling in month.
	ListOccurrencesForMonth(ctx context.Context, groupID string, month schedule.Month) ([]models.OccurrenceDetail, error)
}
