package calldata

import (
	"context"

	"github.com/ethereum/go-ethereum/core"

	"github.com/skip-mev/sequencer/selector"
)

// BlockCallDataOverflow is returned when the transaction's call data does not
// fit in the remaining block call data budget. The transaction may fit in a
// later block.
var BlockCallDataOverflow = selector.NewRejection("BLOCK_CALLDATA_OVERFLOW", false)

var _ selector.Selector = (*Selector)(nil)

// Selector bounds the total call data size of the transactions in a block.
type Selector struct {
	selector.BaseSelector

	maxBlockCallDataSize int
	cumulativeSize       int
}

// NewSelector returns a call data selector for a single block.
func NewSelector(maxBlockCallDataSize int) *Selector {
	return &Selector{maxBlockCallDataSize: maxBlockCallDataSize}
}

// EvaluatePreProcessing rejects the transaction if its call data would push
// the block over its call data budget.
func (s *Selector) EvaluatePreProcessing(_ context.Context, evalCtx *selector.EvaluationContext) selector.Result {
	if s.cumulativeSize+len(evalCtx.Tx.Data()) > s.maxBlockCallDataSize {
		return BlockCallDataOverflow
	}

	return selector.Selected
}

// OnSelected adds the transaction's call data to the block total.
func (s *Selector) OnSelected(_ context.Context, evalCtx *selector.EvaluationContext, _ *core.ExecutionResult) {
	s.cumulativeSize += len(evalCtx.Tx.Data())
}

// CumulativeSize returns the call data size of the selected transactions.
func (s *Selector) CumulativeSize() int {
	return s.cumulativeSize
}
