package ethereum

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum"
)

// Node errors arrive as opaque JSON-RPC errors; the txpool rejection reasons
// are only distinguishable by message. The substrings below match go-ethereum
// and are stable across the major clients.

// IsNotFound reports whether the error means the object does not exist, which
// for receipts means the transaction is pending or was evicted.
func IsNotFound(err error) bool {
	return errors.Is(err, ethereum.NotFound)
}

// IsNonceTooLow reports whether broadcasting failed because the nonce was
// already consumed. During a replacement race this usually means an earlier
// attempt at the same nonce was mined.
func IsNonceTooLow(err error) bool {
	return err != nil && strings.Contains(err.Error(), "nonce too low")
}

// IsAlreadyKnown reports whether the node already holds the exact same
// transaction in its pool. Safe to treat as a successful submit.
func IsAlreadyKnown(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already known")
}

// IsReplacementUnderpriced reports whether a same-nonce replacement was
// rejected for not meeting the node's minimum bump.
func IsReplacementUnderpriced(err error) bool {
	return err != nil && strings.Contains(err.Error(), "replacement transaction underpriced")
}

// IsRevert reports whether a call or estimate failed because execution
// reverted rather than because of a transport problem.
func IsRevert(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "execution reverted") || strings.Contains(msg, "gas required exceeds allowance")
}
