package profitable

import (
	"context"

	"cosmossdk.io/math"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/holiman/uint256"

	"github.com/skip-mev/sequencer/chain"
	"github.com/skip-mev/sequencer/profitability"
	"github.com/skip-mev/sequencer/selector"
)

const (
	PreProcessingLabel  = "PreProcessing"
	PostProcessingLabel = "PostProcessing"
)

var (
	// TxUnprofitableUpfront is returned when the gas limit of a transaction
	// at its upfront price does not cover its cost.
	TxUnprofitableUpfront = selector.NewRejection("TX_UNPROFITABLE_UPFRONT", false)

	// TxUnprofitable is returned when the gas a transaction used at its
	// upfront price does not cover its cost.
	TxUnprofitable = selector.NewRejection("TX_UNPROFITABLE", false)

	// TxUnprofitableRetryLimit is returned for a previously unprofitable
	// transaction once the block's retry budget is spent.
	TxUnprofitableRetryLimit = selector.NewRejection("TX_UNPROFITABLE_RETRY_LIMIT", false)

	// PricingDataUnavailable is returned when the chain head pricing data
	// cannot be read.
	PricingDataUnavailable = selector.NewRejection("PRICING_DATA_UNAVAILABLE", false)
)

type (
	// Config holds the block building profitability policy.
	Config struct {
		// MinMargin is the margin a transaction must pay over its estimated
		// cost.
		MinMargin math.LegacyDec

		// UnprofitableRetryLimit is the number of previously unprofitable
		// transactions evaluated again per block.
		UnprofitableRetryLimit int
	}

	// UnprofitableCache remembers unprofitable transactions across blocks.
	UnprofitableCache = lru.Cache[common.Hash, struct{}]

	// Selector rejects transactions that are not profitable at the pending
	// block's base fee. The upfront check uses the gas limit before
	// execution, the final check uses the gas actually used.
	Selector struct {
		selector.BaseSelector

		logger     log.Logger
		chain      chain.Service
		calculator *profitability.Calculator
		config     Config

		unprofitable *UnprofitableCache

		// retries counts the previously unprofitable transactions evaluated
		// in this block.
		retries int
		seen    map[common.Hash]struct{}
	}
)

var _ selector.Selector = (*Selector)(nil)

// NewUnprofitableCache returns a cache of at most size unprofitable
// transactions. It outlives the selectors of individual blocks.
func NewUnprofitableCache(size int) (*UnprofitableCache, error) {
	return lru.New[common.Hash, struct{}](size)
}

// NewSelector returns a profitability selector for a single block.
func NewSelector(
	logger log.Logger,
	chainService chain.Service,
	calculator *profitability.Calculator,
	config Config,
	unprofitable *UnprofitableCache,
) *Selector {
	if config.MinMargin.IsNil() {
		config.MinMargin = math.LegacyZeroDec()
	}

	return &Selector{
		logger:       logger.With("selector", "profitable"),
		chain:        chainService,
		calculator:   calculator,
		config:       config,
		unprofitable: unprofitable,
		seen:         make(map[common.Hash]struct{}),
	}
}

// EvaluatePreProcessing checks the transaction can pay for its gas limit.
func (s *Selector) EvaluatePreProcessing(ctx context.Context, evalCtx *selector.EvaluationContext) selector.Result {
	if evalCtx.Priority {
		return selector.Selected
	}

	if !s.allowRetry(evalCtx) {
		return TxUnprofitableRetryLimit
	}
	s.seen[evalCtx.Tx.Hash()] = struct{}{}

	return s.evaluate(ctx, evalCtx, PreProcessingLabel, evalCtx.Tx.Gas(), TxUnprofitableUpfront)
}

// EvaluatePostProcessing checks the transaction can pay for the gas it used.
func (s *Selector) EvaluatePostProcessing(
	ctx context.Context,
	evalCtx *selector.EvaluationContext,
	res *core.ExecutionResult,
) selector.Result {
	if evalCtx.Priority {
		return selector.Selected
	}

	return s.evaluate(ctx, evalCtx, PostProcessingLabel, res.UsedGas, TxUnprofitable)
}

// OnSelected forgets that the transaction was ever unprofitable.
func (s *Selector) OnSelected(_ context.Context, evalCtx *selector.EvaluationContext, _ *core.ExecutionResult) {
	if s.unprofitable != nil {
		s.unprofitable.Remove(evalCtx.Tx.Hash())
	}
}

func (s *Selector) evaluate(
	ctx context.Context,
	evalCtx *selector.EvaluationContext,
	label string,
	gas uint64,
	rejection selector.Result,
) selector.Result {
	head, err := s.chain.ChainHeadHeader(ctx)
	if err != nil {
		s.logger.Error("failed to get chain head", "tx_hash", evalCtx.Tx.Hash().Hex(), "err", err)
		return PricingDataUnavailable
	}

	pricing, err := profitability.ExtractPricingFromExtraData(head.Extra)
	if err != nil {
		s.logger.Error("failed to read pricing data", "head", head.Number, "err", err)
		return PricingDataUnavailable
	}

	baseFee := new(uint256.Int)
	if evalCtx.PendingBlockHeader != nil {
		baseFee = profitability.FromBig(evalCtx.PendingBlockHeader.BaseFee)
	}

	upfrontPrice := evalCtx.TransactionGasPrice
	if upfrontPrice == nil {
		upfrontPrice = profitability.UpfrontGasPrice(evalCtx.Tx, baseFee)
	}

	profitable := s.calculator.IsProfitable(
		label,
		evalCtx.Tx,
		s.config.MinMargin,
		baseFee,
		upfrontPrice,
		gas,
		evalCtx.MinGasPrice,
		pricing,
	)
	if profitable {
		return selector.Selected
	}

	if s.unprofitable != nil {
		s.unprofitable.Add(evalCtx.Tx.Hash(), struct{}{})
	}

	return rejection
}

// allowRetry returns false if the transaction was unprofitable in an earlier
// block and the block's retry budget is spent. A transaction uses the budget
// at most once per block no matter how often it is evaluated.
func (s *Selector) allowRetry(evalCtx *selector.EvaluationContext) bool {
	if s.unprofitable == nil {
		return true
	}

	hash := evalCtx.Tx.Hash()
	if _, ok := s.seen[hash]; ok {
		return true
	}

	if !s.unprofitable.Contains(hash) {
		return true
	}

	if s.retries >= s.config.UnprofitableRetryLimit {
		return false
	}
	s.retries++

	return true
}
