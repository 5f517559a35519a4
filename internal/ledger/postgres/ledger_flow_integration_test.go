package postgres

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clearbid/driver-backend/internal/model"
)

func (s *RepositorySuite) newAuction(deadline time.Time, uids ...model.OrderUID) model.Auction {
	orders := make([]model.Order, len(uids))
	for i, uid := range uids {
		orders[i] = model.Order{UID: uid}
	}
	return model.Auction{
		RunID:    uuid.New(),
		Orders:   orders,
		Prices:   map[common.Address]*big.Int{common.HexToAddress("0x01"): big.NewInt(1)},
		Deadline: deadline,
	}
}

func (s *RepositorySuite) TestOutcomeIsAppendOnly() {
	auction := s.newAuction(time.Now().Add(150*time.Second), testUID(0x01))
	id, err := s.repo.CreateAuction(s.testCtx, auction)
	s.Require().NoError(err)
	s.Require().Positive(id)

	hash := common.HexToHash("0xbeef")
	block := uint64(900)
	outcome := model.Outcome{
		AuctionID:     id,
		Reason:        model.OutcomeConfirmed,
		WinningSolver: "alpha",
		OrderUIDs:     []model.OrderUID{testUID(0x01)},
		TxHash:        &hash,
		BlockNumber:   &block,
	}

	s.Require().NoError(s.repo.RecordOutcome(s.testCtx, outcome))

	overwrite := outcome
	overwrite.Reason = model.OutcomeNoWinner
	err = s.repo.RecordOutcome(s.testCtx, overwrite)
	s.Require().True(errors.Is(err, ErrDuplicateOutcome))

	stored, err := s.repo.OutcomeByAuction(s.testCtx, id)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal(model.OutcomeConfirmed, stored.Reason)
	s.Equal("alpha", stored.WinningSolver)
	s.Require().NotNil(stored.TxHash)
	s.Equal(hash, *stored.TxHash)
	s.Require().NotNil(stored.BlockNumber)
	s.Equal(block, *stored.BlockNumber)
	s.Nil(stored.ReorgedAt)
}

func (s *RepositorySuite) TestAuctionIDsAreStrictlyIncreasing() {
	first, err := s.repo.CreateAuction(s.testCtx, s.newAuction(time.Now().Add(time.Minute), testUID(0x01)))
	s.Require().NoError(err)
	second, err := s.repo.CreateAuction(s.testCtx, s.newAuction(time.Now().Add(time.Minute), testUID(0x02)))
	s.Require().NoError(err)
	s.Greater(second, first)
}

func (s *RepositorySuite) TestSettledOrdersBecomeUnavailable() {
	auction := s.newAuction(time.Now().Add(-time.Second), testUID(0x01), testUID(0x02))
	id, err := s.repo.CreateAuction(s.testCtx, auction)
	s.Require().NoError(err)

	hash := common.HexToHash("0xbeef")
	block := uint64(900)
	s.Require().NoError(s.repo.RecordOutcome(s.testCtx, model.Outcome{
		AuctionID:   id,
		Reason:      model.OutcomeConfirmed,
		OrderUIDs:   auction.OrderUIDs(),
		TxHash:      &hash,
		BlockNumber: &block,
	}))

	uids, err := s.repo.UnavailableOrderUIDs(s.testCtx)
	s.Require().NoError(err)
	s.Contains(uids, testUID(0x01))
	s.Contains(uids, testUID(0x02))

	settled, err := s.repo.IsSettled(s.testCtx, testUID(0x01))
	s.Require().NoError(err)
	s.True(settled)
}

func (s *RepositorySuite) TestInFlightOrdersAreUnavailableUntilDeadline() {
	auction := s.newAuction(time.Now().Add(time.Minute), testUID(0x03))
	id, err := s.repo.CreateAuction(s.testCtx, auction)
	s.Require().NoError(err)

	uids, err := s.repo.UnavailableOrderUIDs(s.testCtx)
	s.Require().NoError(err)
	s.Contains(uids, testUID(0x03))

	pending, err := s.repo.PendingAuctionFor(s.testCtx, testUID(0x03))
	s.Require().NoError(err)
	s.Require().NotNil(pending)
	s.Equal(id, *pending)

	expired := s.newAuction(time.Now().Add(-time.Minute), testUID(0x04))
	_, err = s.repo.CreateAuction(s.testCtx, expired)
	s.Require().NoError(err)

	uids, err = s.repo.UnavailableOrderUIDs(s.testCtx)
	s.Require().NoError(err)
	s.NotContains(uids, testUID(0x04))
}

func (s *RepositorySuite) TestReorgDowngradeFreesOrders() {
	auction := s.newAuction(time.Now().Add(-time.Second), testUID(0x05))
	id, err := s.repo.CreateAuction(s.testCtx, auction)
	s.Require().NoError(err)

	hash := common.HexToHash("0xbeef")
	block := uint64(900)
	s.Require().NoError(s.repo.RecordOutcome(s.testCtx, model.Outcome{
		AuctionID:   id,
		Reason:      model.OutcomeConfirmed,
		OrderUIDs:   auction.OrderUIDs(),
		TxHash:      &hash,
		BlockNumber: &block,
	}))

	recent, err := s.repo.RecentConfirmedOutcomes(s.testCtx, 850)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal(id, recent[0].AuctionID)

	marked, err := s.repo.MarkOutcomeReorged(s.testCtx, id, "receipt 0xbeef missing at block 950")
	s.Require().NoError(err)
	s.True(marked)

	marked, err = s.repo.MarkOutcomeReorged(s.testCtx, id, "second pass")
	s.Require().NoError(err)
	s.False(marked, "downgrade must be idempotent")

	settled, err := s.repo.IsSettled(s.testCtx, testUID(0x05))
	s.Require().NoError(err)
	s.False(settled)

	uids, err := s.repo.UnavailableOrderUIDs(s.testCtx)
	s.Require().NoError(err)
	s.NotContains(uids, testUID(0x05))

	recent, err = s.repo.RecentConfirmedOutcomes(s.testCtx, 850)
	s.Require().NoError(err)
	s.Empty(recent)

	stored, err := s.repo.OutcomeByAuction(s.testCtx, id)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.NotNil(stored.ReorgedAt, "original record is kept with a downgrade stamp")
	s.Equal("receipt 0xbeef missing at block 950", stored.Anomaly)
}

func (s *RepositorySuite) TestLiveSettlementTransactionsRoundTrip() {
	live, err := s.repo.LiveSettlementTransactions(s.testCtx)
	s.Require().NoError(err)
	s.Empty(live)

	auction := s.newAuction(time.Now().Add(time.Minute), testUID(0x06))
	id, err := s.repo.CreateAuction(s.testCtx, auction)
	s.Require().NoError(err)

	deadline := time.Now().Add(time.Minute).UTC().Truncate(time.Millisecond)
	first := model.SettlementTransaction{
		AuctionID: id,
		Attempt:   1,
		Nonce:     12,
		GasFeeCap: big.NewInt(205),
		GasTipCap: big.NewInt(5),
		Hash:      common.HexToHash("0x01"),
		Status:    model.SettlementPending,
		Deadline:  deadline,
	}
	s.Require().NoError(s.repo.SaveSettlementTransaction(s.testCtx, first))

	second := first
	second.Attempt = 2
	second.GasFeeCap = big.NewInt(262)
	second.GasTipCap = big.NewInt(6)
	second.Hash = common.HexToHash("0x02")
	second.Cancellation = true
	s.Require().NoError(s.repo.SaveSettlementTransaction(s.testCtx, second))

	superseded := first
	superseded.Status = model.SettlementSuperseded
	s.Require().NoError(s.repo.SaveSettlementTransaction(s.testCtx, superseded))

	// Every non-terminal attempt at the nonce is returned, superseded
	// replacements included, newest first.
	live, err = s.repo.LiveSettlementTransactions(s.testCtx)
	s.Require().NoError(err)
	s.Require().Len(live, 2)
	s.Equal(2, live[0].Attempt)
	s.Equal(uint64(12), live[0].Nonce)
	s.Equal(0, live[0].GasFeeCap.Cmp(big.NewInt(262)))
	s.Equal(common.HexToHash("0x02"), live[0].Hash)
	s.True(live[0].Cancellation)
	s.True(live[0].Deadline.Equal(deadline))
	s.Equal(1, live[1].Attempt)
	s.Equal(common.HexToHash("0x01"), live[1].Hash)
	s.Equal(model.SettlementSuperseded, live[1].Status)
	s.False(live[1].Cancellation)

	confirmed := second
	confirmed.Status = model.SettlementConfirmed
	s.Require().NoError(s.repo.SaveSettlementTransaction(s.testCtx, confirmed))

	live, err = s.repo.LiveSettlementTransactions(s.testCtx)
	s.Require().NoError(err)
	s.Empty(live)
}

func (s *RepositorySuite) TestCompetitionAuditRoundTrip() {
	auction := s.newAuction(time.Now().Add(time.Minute), testUID(0x07))
	id, err := s.repo.CreateAuction(s.testCtx, auction)
	s.Require().NoError(err)

	base := time.Now().UTC().Truncate(time.Millisecond)
	entries := []model.CompetitionEntry{
		{
			AuctionID: id,
			Solver:    "alpha",
			Score:     decimal.RequireFromString("100.5"),
			OrderUIDs: auction.OrderUIDs(),
			ArrivedAt: base,
		},
		{
			AuctionID:     id,
			Solver:        "cheater",
			Score:         decimal.NewFromInt(9_000),
			InvalidReason: "order not in the auction",
			ArrivedAt:     base.Add(time.Second),
		},
	}
	s.Require().NoError(s.repo.InsertCompetitionSolutions(s.testCtx, entries))

	stored, err := s.repo.CompetitionByAuction(s.testCtx, id)
	s.Require().NoError(err)
	s.Require().Len(stored, 2)
	s.Equal("alpha", stored[0].Solver)
	s.True(stored[0].Score.Equal(decimal.RequireFromString("100.5")))
	s.Equal(auction.OrderUIDs(), stored[0].OrderUIDs)
	s.Empty(stored[0].InvalidReason)
	s.Equal("cheater", stored[1].Solver)
	s.Equal("order not in the auction", stored[1].InvalidReason)
}
