package settlement

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// NonceOwner is the single owner of the settlement account's nonce. All
// allocations go through it rather than querying the chain ad hoc, which
// removes races between simulate-time and submit-time nonce values.
//
// Acquire holds the owner's lock until the returned release function runs, so
// at most one settlement transaction per account can be in a submitted or
// pending state at any time.
type NonceOwner struct {
	mu      sync.Mutex
	node    NodeClient
	account common.Address
	next    uint64
	synced  bool
}

// NewNonceOwner builds a NonceOwner for the account. The first Acquire syncs
// from the chain's pending nonce.
func NewNonceOwner(node NodeClient, account common.Address) *NonceOwner {
	return &NonceOwner{node: node, account: account}
}

// Acquire returns the next nonce and a release function. The caller must call
// release exactly once: with consumed=true after the nonce was burned
// on-chain, with consumed=false otherwise, which forces a resync from the
// chain before the next allocation.
func (o *NonceOwner) Acquire(ctx context.Context) (uint64, func(consumed bool), error) {
	o.mu.Lock()

	if !o.synced {
		next, err := o.node.PendingNonceAt(ctx, o.account)
		if err != nil {
			o.mu.Unlock()
			return 0, nil, fmt.Errorf("sync account nonce: %w", err)
		}
		o.next = next
		o.synced = true
	}

	nonce := o.next
	var once sync.Once
	release := func(consumed bool) {
		once.Do(func() {
			if consumed {
				o.next++
			} else {
				o.synced = false
			}
			o.mu.Unlock()
		})
	}
	return nonce, release, nil
}
