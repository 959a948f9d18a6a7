package tracelimit

import (
	"context"
	"slices"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/tracing"

	"github.com/skip-mev/sequencer/selector"
)

var (
	// TxModuleLineCountOverflow is returned when a transaction alone exceeds
	// the line limit of a module. It can never be included.
	TxModuleLineCountOverflow = selector.NewRejection("TX_MODULE_LINE_COUNT_OVERFLOW", true)

	// BlockModuleLineCountFull is returned when a transaction does not fit in
	// the lines left for a module in the current block.
	BlockModuleLineCountFull = selector.NewRejection("BLOCK_MODULE_LINE_COUNT_FULL", false)

	// ModuleLineLimitMissing is returned when a transaction touches a module
	// that has no configured limit. The node is misconfigured, so the
	// transaction stays in the pool.
	ModuleLineLimitMissing = selector.NewRejection("MODULE_LINE_LIMIT_MISSING", false)
)

// LineCounter accumulates the trace lines produced per module while the
// transactions of a block are executed. Its tracer is attached to the
// execution engine.
type LineCounter interface {
	// Tracer returns the hooks that observe transaction execution.
	Tracer() *tracing.Hooks

	// LineCounts returns the cumulative line count per module, including the
	// lines of transactions executed since the last Commit.
	LineCounts() map[string]uint64

	// Commit makes the lines recorded so far part of the block.
	Commit()

	// Rollback discards the lines recorded since the last Commit. It is a
	// no-op if nothing was recorded.
	Rollback()
}

var (
	_ selector.Selector       = (*Selector)(nil)
	_ selector.TracerProvider = (*Selector)(nil)
)

// Selector bounds the trace lines the transactions of a block produce in
// each module.
type Selector struct {
	selector.BaseSelector

	logger  log.Logger
	counter LineCounter
	limits  map[string]uint64

	// committed holds the line counts of the selected transactions.
	committed map[string]uint64
}

// NewSelector returns a trace line limit selector for a single block.
func NewSelector(logger log.Logger, counter LineCounter, limits map[string]uint64) *Selector {
	return &Selector{
		logger:    logger.With("selector", "trace_line_limit"),
		counter:   counter,
		limits:    limits,
		committed: make(map[string]uint64),
	}
}

// EvaluatePostProcessing checks the line counts after execution of the
// transaction against the module limits.
func (s *Selector) EvaluatePostProcessing(
	_ context.Context,
	evalCtx *selector.EvaluationContext,
	_ *core.ExecutionResult,
) selector.Result {
	counts := s.counter.LineCounts()

	// Iterate in a stable order so the reported module is deterministic.
	modules := make([]string, 0, len(counts))
	for module := range counts {
		modules = append(modules, module)
	}
	slices.Sort(modules)

	for _, module := range modules {
		count := counts[module]
		limit, ok := s.limits[module]
		if !ok {
			s.logger.Error("no line limit configured for module", "module", module)
			return ModuleLineLimitMissing
		}

		txCount := count - s.committed[module]
		if txCount > limit {
			s.logger.Info(
				"transaction exceeds module line limit",
				"tx_hash", evalCtx.Tx.Hash().Hex(),
				"module", module,
				"count", txCount,
				"limit", limit,
			)
			return TxModuleLineCountOverflow
		}

		if count > limit {
			s.logger.Debug(
				"block module line limit reached",
				"tx_hash", evalCtx.Tx.Hash().Hex(),
				"module", module,
				"count", count,
				"limit", limit,
			)
			return BlockModuleLineCountFull
		}
	}

	return selector.Selected
}

// OnSelected commits the line counts of the transaction.
func (s *Selector) OnSelected(context.Context, *selector.EvaluationContext, *core.ExecutionResult) {
	for module, count := range s.counter.LineCounts() {
		s.committed[module] = count
	}
	s.counter.Commit()
}

// OnNotSelected drops the lines of the transaction from the counter.
func (s *Selector) OnNotSelected(context.Context, *selector.EvaluationContext, selector.Result) {
	s.counter.Rollback()
}

// Tracer implements selector.TracerProvider.
func (s *Selector) Tracer() *tracing.Hooks {
	return s.counter.Tracer()
}
