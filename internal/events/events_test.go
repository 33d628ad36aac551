package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseCreated_JSON(t *testing.T) {
	msg := ExpenseCreated{
		ExpenseID:   "e1",
		GroupID:     "g1",
		PayerUserID: "u1",
		TotalAmount: 900,
		Months:      []string{"2026-02", "2026-03", "2026-04"},
		Timestamp:   time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := msg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"expense_id":"e1"`)
	assert.Contains(t, string(data), `"months":["2026-02","2026-03","2026-04"]`)

	decoded, err := ExpenseCreatedFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, msg, *decoded)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishExpenseCreated(context.Background(), ExpenseCreated{ExpenseID: "e1"}))
	assert.NoError(t, p.Close())
}

func TestNewAMQPPublisher_BadURL(t *testing.T) {
	_, err := NewAMQPPublisher("amqp://127.0.0.1:1/", "household")
	assert.Error(t, err)
}
