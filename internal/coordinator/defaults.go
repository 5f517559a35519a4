package coordinator

import "time"

const (
	defaultAuctionInterval    = 30 * time.Second
	defaultCompetitionTimeout = 15 * time.Second
	defaultSettlementBudget   = 150 * time.Second
	defaultErrorBackoff       = 5 * time.Second

	// defaultReorgWindow is how many blocks back confirmed outcomes are
	// re-verified against the chain.
	defaultReorgWindow = 64
)
