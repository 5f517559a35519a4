package competition

import "time"

const (
	// DefaultTimeout bounds one competition round. It must stay well below the
	// auction's settlement deadline so the winner has time to land on-chain.
	DefaultTimeout = 15 * time.Second

	defaultRequestTimeout = 10 * time.Second
)
