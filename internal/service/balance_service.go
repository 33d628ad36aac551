package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/hanekasa/internal/calculator"
	"github.com/mmynk/hanekasa/internal/format"
	"github.com/mmynk/hanekasa/internal/models"
	"github.com/mmynk/hanekasa/internal/schedule"
	"github.com/mmynk/hanekasa/internal/storage"
	"github.com/mmynk/hanekasa/pkg/api"
)

var _ api.BalanceServiceHandler = (*BalanceService)(nil)

// BalanceService computes monthly balances and settlement plans.
type BalanceService struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewBalanceService(store storage.Store, logger *slog.Logger) *BalanceService {
	return &BalanceService{store: store, logger: logger, now: time.Now}
}

// GetMonthlySummary aggregates the month's occurrences into per-member balances
// and the transfers that settle them.
func (s *BalanceService) GetMonthlySummary(ctx context.Context, req *connect.Request[api.GetMonthlySummaryRequest]) (*connect.Response[api.GetMonthlySummaryResponse], error) {
	groupID := req.Msg.GroupID
	if _, err := requireMember(ctx, s.store, groupID); err != nil {
		return nil, err
	}

	month := schedule.MonthOf(s.now())
	if req.Msg.Month != "" {
		var err error
		month, err = schedule.ParseMonth(req.Msg.Month)
		if err != nil {
			return nil, invalidArgument(err)
		}
	}

	var (
		members     []*models.GroupMember
		occurrences []models.OccurrenceDetail
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = s.store.ListGroupMembers(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		occurrences, err = s.store.ListOccurrencesForMonth(gctx, groupID, month)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load month", "group_id", groupID, "month", month.String(), "error", err)
		return nil, storageError(err)
	}

	summary := buildSummary(groupID, month, members, occurrences)

	s.logger.Info("Monthly summary computed",
		"group_id", groupID,
		"month", summary.Month,
		"occurrences", summary.OccurrenceCount,
		"transfers", summary.TransferCount,
	)
	return connect.NewResponse(&api.GetMonthlySummaryResponse{Summary: summary}), nil
}

func buildSummary(groupID string, month schedule.Month, members []*models.GroupMember, occurrences []models.OccurrenceDetail) *api.MonthlySummary {
	calcMembers := make([]calculator.Member, 0, len(members))
	for _, m := range members {
		calcMembers = append(calcMembers, calculator.Member{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			Email:       m.Email,
		})
	}

	var total float64
	calcOccurrences := make([]calculator.Occurrence, 0, len(occurrences))
	for _, o := range occurrences {
		total += o.Amount
		calcOccurrences = append(calcOccurrences, calculator.Occurrence{
			ExpenseID:          o.ExpenseID,
			Amount:             o.Amount,
			PayerUserID:        o.PayerUserID,
			ParticipantUserIDs: o.ParticipantUserIDs,
		})
	}

	balances := calculator.CalculateBalances(calcMembers, calcOccurrences)
	settlements := calculator.CalculateSettlements(balances)

	summary := &api.MonthlySummary{
		GroupID:         groupID,
		Month:           month.String(),
		MonthName:       format.MonthName(month),
		Balances:        make([]*api.MemberBalance, 0, len(balances)),
		Settlements:     make([]*api.Settlement, 0, len(settlements)),
		TotalExpenses:   calculator.Round2(total),
		OccurrenceCount: len(occurrences),
		TransferCount:   len(settlements),
	}
	summary.TotalExpensesDisplay = format.Currency(summary.TotalExpenses)

	for _, b := range balances {
		summary.Balances = append(summary.Balances, &api.MemberBalance{
			UserID:            b.UserID,
			DisplayName:       b.DisplayName,
			Email:             b.Email,
			TotalPaid:         b.TotalPaid,
			TotalOwed:         b.TotalOwed,
			NetBalance:        b.NetBalance,
			NetBalanceDisplay: format.SignedCurrency(b.NetBalance),
		})
	}
	for _, st := range settlements {
		summary.Settlements = append(summary.Settlements, &api.Settlement{
			FromUserID:    st.FromUserID,
			FromName:      st.FromName,
			ToUserID:      st.ToUserID,
			ToName:        st.ToName,
			Amount:        st.Amount,
			AmountDisplay: format.Currency(st.Amount),
		})
	}
	return summary
}
