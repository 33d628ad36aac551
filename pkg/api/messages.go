// Package api defines the wire messages of the household ledger RPC services
// and the Connect handlers and clients that carry them as JSON.
package api

// User is a registered account as returned to clients.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// Group is a household.
type Group struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// Member is a user's membership in a group.
type Member struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	Group   *Group    `json:"group"`
	Members []*Member `json:"members"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group   *Group    `json:"group"`
	Members []*Member `json:"members"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// AddMemberRequest adds the registered user with Email to the group.
type AddMemberRequest struct {
	GroupID string `json:"group_id"`
	Email   string `json:"email"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type ListMembersRequest struct {
	GroupID string `json:"group_id"`
}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

// Occurrence is the part of an expense due in one month.
type Occurrence struct {
	Month  string  `json:"month"` // YYYY-MM
	Amount float64 `json:"amount"`
}

// Expense is a recorded payment with its monthly schedule.
type Expense struct {
	ID                    string        `json:"id"`
	GroupID               string        `json:"group_id"`
	CreatedBy             string        `json:"created_by"`
	PayerUserID           string        `json:"payer_user_id"`
	PayerName             string        `json:"payer_name,omitempty"`
	Title                 string        `json:"title"`
	Notes                 string        `json:"notes,omitempty"`
	TotalAmount           float64       `json:"total_amount"`
	ExpenseDate           string        `json:"expense_date"` // YYYY-MM-DD
	IsInstallment         bool          `json:"is_installment"`
	InstallmentMonths     int           `json:"installment_months"`
	InstallmentStartMonth string        `json:"installment_start_month,omitempty"` // YYYY-MM
	ParticipantIDs        []string      `json:"participant_ids"`
	Occurrences           []*Occurrence `json:"occurrences,omitempty"`
	CreatedAt             int64         `json:"created_at"`
}

// CreateExpenseRequest records an expense. PayerUserID defaults to the caller
// and ExpenseDate to today.
type CreateExpenseRequest struct {
	GroupID               string   `json:"group_id"`
	PayerUserID           string   `json:"payer_user_id"`
	Title                 string   `json:"title"`
	Notes                 string   `json:"notes"`
	TotalAmount           float64  `json:"total_amount"`
	ExpenseDate           string   `json:"expense_date"`
	ParticipantIDs        []string `json:"participant_ids"`
	IsInstallment         bool     `json:"is_installment"`
	InstallmentMonths     int      `json:"installment_months"`
	InstallmentStartMonth string   `json:"installment_start_month"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

// GetMonthlySummaryRequest asks for balances and settlements of one month.
// An empty Month means the current month.
type GetMonthlySummaryRequest struct {
	GroupID string `json:"group_id"`
	Month   string `json:"month"` // YYYY-MM
}

// MemberBalance is one member's position for the month.
type MemberBalance struct {
	UserID            string  `json:"user_id"`
	DisplayName       string  `json:"display_name"`
	Email             string  `json:"email"`
	TotalPaid         float64 `json:"total_paid"`
	TotalOwed         float64 `json:"total_owed"`
	NetBalance        float64 `json:"net_balance"` // Positive = is owed money, Negative = owes money
	NetBalanceDisplay string  `json:"net_balance_display"`
}

// Settlement is a recommended payment.
type Settlement struct {
	FromUserID    string  `json:"from_user_id"`
	FromName      string  `json:"from_name"`
	ToUserID      string  `json:"to_user_id"`
	ToName        string  `json:"to_name"`
	Amount        float64 `json:"amount"`
	AmountDisplay string  `json:"amount_display"`
}

type MonthlySummary struct {
	GroupID              string           `json:"group_id"`
	Month                string           `json:"month"`
	MonthName            string           `json:"month_name"`
	Balances             []*MemberBalance `json:"balances"`
	Settlements          []*Settlement    `json:"settlements"`
	TotalExpenses        float64          `json:"total_expenses"`
	TotalExpensesDisplay string           `json:"total_expenses_display"`
	OccurrenceCount      int              `json:"occurrence_count"`
	TransferCount        int              `json:"transfer_count"`
}

type GetMonthlySummaryResponse struct {
	Summary *MonthlySummary `json:"summary"`
}
