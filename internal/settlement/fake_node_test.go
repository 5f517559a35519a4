package settlement

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// fakeNode scripts chain behavior per method. Unset fields panic so a test
// never silently exercises a path it did not script.
type fakeNode struct {
	mu sync.Mutex

	blockNumberFn        func() (uint64, error)
	baseFeeFn            func() (*big.Int, error)
	suggestGasTipCapFn   func() (*big.Int, error)
	pendingNonceAtFn     func(account common.Address) (uint64, error)
	estimateGasFn        func(msg ethereum.CallMsg) (uint64, error)
	callContractFn       func(msg ethereum.CallMsg) ([]byte, error)
	sendTransactionFn    func(tx *types.Transaction) error
	transactionReceiptFn func(txHash common.Hash) (*types.Receipt, error)

	sent []*types.Transaction
}

func (f *fakeNode) BlockNumber(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blockNumberFn()
}

func (f *fakeNode) BaseFee(context.Context) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.baseFeeFn()
}

func (f *fakeNode) SuggestGasTipCap(context.Context) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suggestGasTipCapFn()
}

func (f *fakeNode) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pendingNonceAtFn(account)
}

func (f *fakeNode) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.estimateGasFn(msg)
}

func (f *fakeNode) CallContract(_ context.Context, msg ethereum.CallMsg) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callContractFn(msg)
}

func (f *fakeNode) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := f.sendTransactionFn(tx)
	if err == nil {
		f.sent = append(f.sent, tx)
	}
	return err
}

func (f *fakeNode) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.transactionReceiptFn(txHash)
}

func (f *fakeNode) sentTransactions() []*types.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.Transaction, len(f.sent))
	copy(out, f.sent)
	return out
}
