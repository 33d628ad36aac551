package calculator

import (
	"cmp"
	"slices"
)

// Settlement is a recommended payment from a debtor to a creditor.
type Settlement struct {
	FromUserID string // Person who owes
	FromName   string
	ToUserID   string // Person who is owed
	ToName     string
	Amount     float64
}

// party is a working copy of a balance with the amount still to be settled.
type party struct {
	userID    string
	name      string
	remaining float64
}

// CalculateSettlements proposes transfers that bring every balance to zero.
//
// Debtors and creditors are each ordered by amount, largest first, and matched with
// two pointers: the current debtor pays the current creditor the smaller of the two
// outstanding amounts, and whichever side is cleared moves on. Members within Epsilon
// of zero take no part. This keeps the number of transfers low but is a heuristic;
// it does not guarantee the minimum possible count.
//
// Equal amounts keep their input order, so the result is deterministic for a given
// input. The balances slice is not modified.
func CalculateSettlements(balances []Balance) []Settlement {
	var debtors, creditors []party
	for _, b := range balances {
		switch {
		case b.NetBalance < -Epsilon:
			debtors = append(debtors, party{userID: b.UserID, name: b.DisplayName, remaining: -b.NetBalance})
		case b.NetBalance > Epsilon:
			creditors = append(creditors, party{userID: b.UserID, name: b.DisplayName, remaining: b.NetBalance})
		}
	}

	largestFirst := func(a, b party) int { return cmp.Compare(b.remaining, a.remaining) }
	slices.SortStableFunc(debtors, largestFirst)
	slices.SortStableFunc(creditors, largestFirst)

	settlements := []Settlement{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := min(debtor.remaining, creditor.remaining)
		if amount > Epsilon {
			settlements = append(settlements, Settlement{
				FromUserID: debtor.userID,
				FromName:   debtor.name,
				ToUserID:   creditor.userID,
				ToName:     creditor.name,
				Amount:     Round2(amount),
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining < Epsilon {
			i++
		}
		if creditor.remaining < Epsilon {
			j++
		}
	}

	return settlements
}

// TotalTransferred sums the amounts of a settlement plan.
func TotalTransferred(settlements []Settlement) float64 {
	var total float64
	for _, s := range settlements {
		total += s.Amount
	}
	return Round2(total)
}
