package gas

import (
	"context"

	"github.com/ethereum/go-ethereum/core"

	"github.com/skip-mev/sequencer/selector"
)

var (
	// TxGasExceedsUserMaxBlockGas is returned when a transaction alone uses
	// more gas than a block may use. It can never be included.
	TxGasExceedsUserMaxBlockGas = selector.NewRejection("TX_GAS_EXCEEDS_USER_MAX_BLOCK_GAS", true)

	// TxTooLargeForRemainingUserGas is returned when a transaction does not fit
	// in the gas left in the current block.
	TxTooLargeForRemainingUserGas = selector.NewRejection("TX_TOO_LARGE_FOR_REMAINING_USER_GAS", false)
)

var _ selector.Selector = (*Selector)(nil)

// Selector bounds the gas used by the transactions of a block. The bound is
// applied to the gas actually used, so it is checked after execution.
type Selector struct {
	selector.BaseSelector

	maxGasPerBlock    uint64
	cumulativeGasUsed uint64
}

// NewSelector returns a gas selector for a single block.
func NewSelector(maxGasPerBlock uint64) *Selector {
	return &Selector{maxGasPerBlock: maxGasPerBlock}
}

func (s *Selector) EvaluatePostProcessing(
	_ context.Context,
	_ *selector.EvaluationContext,
	res *core.ExecutionResult,
) selector.Result {
	gasUsed := res.UsedGas

	if gasUsed > s.maxGasPerBlock {
		return TxGasExceedsUserMaxBlockGas
	}

	if s.cumulativeGasUsed+gasUsed > s.maxGasPerBlock {
		return TxTooLargeForRemainingUserGas
	}

	return selector.Selected
}

func (s *Selector) OnSelected(_ context.Context, _ *selector.EvaluationContext, res *core.ExecutionResult) {
	s.cumulativeGasUsed += res.UsedGas
}

// CumulativeGasUsed returns the gas used by the selected transactions.
func (s *Selector) CumulativeGasUsed() uint64 {
	return s.cumulativeGasUsed
}
