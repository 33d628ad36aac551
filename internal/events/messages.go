// Package events publishes domain events to a message broker.
package events

import (
	"encoding/json"
	"time"
)

// RoutingKeyExpenseCreated is the routing key for ExpenseCreated messages.
const RoutingKeyExpenseCreated = "expense.created"

// ExpenseCreated announces a newly recorded expense. Consumers fetch the full
// expense from storage when they need more.
type ExpenseCreated struct {
	ExpenseID   string    `json:"expense_id"`
	GroupID     string    `json:"group_id"`
	PayerUserID string    `json:"payer_user_id"`
	TotalAmount float64   `json:"total_amount"`
	Months      []string  `json:"months"` // YYYY-MM of every occurrence
	Timestamp   time.Time `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseCreated) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseCreatedFromJSON decodes a message published by PublishExpenseCreated.
func ExpenseCreatedFromJSON(data []byte) (*ExpenseCreated, error) {
	var msg ExpenseCreated
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
