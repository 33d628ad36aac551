// Package calculator turns a month's expense occurrences into per-member balances
// and a greedy settlement plan. Everything here is pure: no I/O, no shared state.
package calculator

// Member is a group member as the aggregator sees it. Only UserID takes part in the
// arithmetic; name and email are passed through to the results.
type Member struct {
	UserID      string
	DisplayName string
	Email       string
}

// Occurrence is one period's amount of an expense together with who paid it and who
// shares it. Participant ids must already be deduplicated.
type Occurrence struct {
	ExpenseID          string
	Amount             float64
	PayerUserID        string
	ParticipantUserIDs []string
}

// Balance is the outcome for one member over a set of occurrences.
type Balance struct {
	UserID      string
	DisplayName string
	Email       string
	TotalPaid   float64 // Sum of amounts this member paid
	TotalOwed   float64 // Sum of this member's shares
	NetBalance  float64 // Positive = is owed money, Negative = owes money
}

// CalculateBalances folds occurrences into one Balance per member, in the order the
// members were given. Members without activity get a zero balance.
//
// Each occurrence is split equally among its participants. Occurrences without
// participants are ignored, and payer or participant ids that are not members are
// dropped without creating new entries. Totals are rounded with Round2.
func CalculateBalances(members []Member, occurrences []Occurrence) []Balance {
	type totals struct {
		paid float64
		owed float64
	}

	byID := make(map[string]*totals, len(members))
	for _, m := range members {
		byID[m.UserID] = &totals{}
	}

	for _, occ := range occurrences {
		if len(occ.ParticipantUserIDs) == 0 {
			continue
		}
		share := occ.Amount / float64(len(occ.ParticipantUserIDs))

		if t, ok := byID[occ.PayerUserID]; ok {
			t.paid += occ.Amount
		}
		for _, id := range occ.ParticipantUserIDs {
			if t, ok := byID[id]; ok {
				t.owed += share
			}
		}
	}

	balances := make([]Balance, 0, len(members))
	for _, m := range members {
		t := byID[m.UserID]
		balances = append(balances, Balance{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			Email:       m.Email,
			TotalPaid:   Round2(t.paid),
			TotalOwed:   Round2(t.owed),
			NetBalance:  Round2(t.paid - t.owed),
		})
	}
	return balances
}
