package selector

import (
	"context"
	"time"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/tracing"

	"github.com/skip-mev/sequencer/reporter"
)

// Chain evaluates transactions against an ordered list of selectors. The
// first selector that does not select a transaction decides the outcome and
// the remaining selectors are skipped. Every selector is notified of the
// final outcome.
//
// A Chain is built for a single block building session. The order of the
// selectors is fixed for its lifetime and determines which rejection is
// reported when several selectors would reject. Callers must not use a Chain
// concurrently.
type Chain struct {
	logger    log.Logger
	selectors []Selector
	reporter  reporter.Reporter
	nodeType  reporter.NodeType

	// now is overridden in tests.
	now func() time.Time
}

// NewChain returns a selector chain evaluating selectors in the given order.
// Discardable rejections are sent to rep, which may be nil.
func NewChain(logger log.Logger, rep reporter.Reporter, nodeType reporter.NodeType, selectors ...Selector) *Chain {
	if rep == nil {
		rep = reporter.NoopReporter{}
	}

	return &Chain{
		logger:    logger.With("module", "selector"),
		selectors: selectors,
		reporter:  rep,
		nodeType:  nodeType,
		now:       time.Now,
	}
}

// Selectors returns the selectors in evaluation order.
func (c *Chain) Selectors() []Selector {
	return c.selectors
}

// EvaluatePreProcessing returns the first non selected result of the
// selectors' pre-processing evaluation, or Selected.
func (c *Chain) EvaluatePreProcessing(ctx context.Context, evalCtx *EvaluationContext) Result {
	for _, s := range c.selectors {
		if result := s.EvaluatePreProcessing(ctx, evalCtx); !result.IsSelected() {
			return result
		}
	}

	return Selected
}

// EvaluatePostProcessing returns the first non selected result of the
// selectors' post-processing evaluation, or Selected.
func (c *Chain) EvaluatePostProcessing(ctx context.Context, evalCtx *EvaluationContext, res *core.ExecutionResult) Result {
	for _, s := range c.selectors {
		if result := s.EvaluatePostProcessing(ctx, evalCtx, res); !result.IsSelected() {
			return result
		}
	}

	return Selected
}

// OnTransactionSelected notifies every selector that the transaction was
// added to the block.
func (c *Chain) OnTransactionSelected(ctx context.Context, evalCtx *EvaluationContext, res *core.ExecutionResult) {
	for _, s := range c.selectors {
		s.OnSelected(ctx, evalCtx, res)
	}
}

// OnTransactionNotSelected notifies every selector that the transaction was
// not added to the block and reports it if the rejection is discardable.
func (c *Chain) OnTransactionNotSelected(ctx context.Context, evalCtx *EvaluationContext, result Result) {
	for _, s := range c.selectors {
		s.OnNotSelected(ctx, evalCtx, result)
	}

	if !result.Discard() {
		return
	}

	blockNumber := evalCtx.BlockNumber()
	c.logger.Debug(
		"reporting discarded transaction",
		"tx_hash", evalCtx.Tx.Hash().Hex(),
		"block", blockNumber,
		"reason", result.String(),
	)

	c.reporter.Report(reporter.NewRecord(c.nodeType, evalCtx.Tx, c.now(), &blockNumber, result.String()))
}

// Tracer returns the tracer of the first selector that provides one, or nil.
// The chain itself does not interpret trace events.
func (c *Chain) Tracer() *tracing.Hooks {
	for _, s := range c.selectors {
		if p, ok := s.(TracerProvider); ok {
			return p.Tracer()
		}
	}

	return nil
}
