package selector

import (
	"context"

	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

type (
	// Result is the outcome of evaluating a transaction. It is either Selected
	// or a rejection carrying a reason code and whether the transaction should
	// be dropped from the pool.
	Result struct {
		code     string
		discard  bool
		selected bool
	}

	// EvaluationContext bundles everything a selector needs to know about the
	// transaction under evaluation and the block being built.
	EvaluationContext struct {
		// Tx is the candidate transaction.
		Tx *types.Transaction

		// PendingBlockHeader is the header of the block being built.
		PendingBlockHeader *types.Header

		// TransactionGasPrice is the effective gas price the transaction pays
		// in the pending block. Selectors derive it when nil.
		TransactionGasPrice *uint256.Int

		// MinGasPrice is the node's minimum gas price.
		MinGasPrice *uint256.Int

		// Priority is true for transactions from priority senders.
		Priority bool
	}

	// Selector decides whether a transaction can be added to the block being
	// built. A selector may keep block scoped state which it updates when
	// notified of the final outcome of a transaction.
	Selector interface {
		// EvaluatePreProcessing evaluates a transaction before it is executed.
		EvaluatePreProcessing(ctx context.Context, evalCtx *EvaluationContext) Result

		// EvaluatePostProcessing evaluates a transaction after it is executed.
		EvaluatePostProcessing(ctx context.Context, evalCtx *EvaluationContext, res *core.ExecutionResult) Result

		// OnSelected is called when a transaction is added to the block.
		OnSelected(ctx context.Context, evalCtx *EvaluationContext, res *core.ExecutionResult)

		// OnNotSelected is called when a transaction is not added to the block.
		OnNotSelected(ctx context.Context, evalCtx *EvaluationContext, result Result)
	}

	// TracerProvider is implemented by selectors that must observe the
	// execution of each transaction.
	TracerProvider interface {
		Tracer() *tracing.Hooks
	}
)

// Selected is the result of a transaction that passes a selector.
var Selected = Result{code: "SELECTED", selected: true}

// NewRejection returns a rejection with the given reason code. Discardable
// rejections remove the transaction from the pool, others only skip it for
// the current block.
func NewRejection(code string, discard bool) Result {
	return Result{code: code, discard: discard}
}

// IsSelected returns true if the transaction passed.
func (r Result) IsSelected() bool { return r.selected }

// Discard returns true if the transaction must be removed from the pool.
func (r Result) Discard() bool { return r.discard }

// String returns the reason code.
func (r Result) String() string { return r.code }

// BlockNumber returns the number of the pending block, or zero if unknown.
func (c *EvaluationContext) BlockNumber() uint64 {
	if c.PendingBlockHeader == nil || c.PendingBlockHeader.Number == nil {
		return 0
	}

	return c.PendingBlockHeader.Number.Uint64()
}
