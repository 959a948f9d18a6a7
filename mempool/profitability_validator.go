package mempool

import (
	"context"
	"time"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/skip-mev/sequencer/chain"
	"github.com/skip-mev/sequencer/profitability"
	"github.com/skip-mev/sequencer/reporter"
)

const (
	// TxPoolLabel tags the profitability metrics of pool admission.
	TxPoolLabel = "Txpool"

	// ReasonGasPriceTooLow is returned for transactions that are not
	// profitable.
	ReasonGasPriceTooLow = "Gas price too low"
)

type (
	// ProfitabilityConfig holds the pool admission policy.
	ProfitabilityConfig struct {
		// MinMargin is the margin a pool transaction must pay over its
		// estimated cost.
		MinMargin math.LegacyDec

		// CheckAPIEnabled enables the check for transactions received
		// through the API.
		CheckAPIEnabled bool

		// CheckP2PEnabled enables the check for transactions received from
		// peers.
		CheckP2PEnabled bool

		// MinGasPrice is the node's minimum gas price.
		MinGasPrice *uint256.Int
	}

	// ProfitabilityValidator rejects pool transactions whose upfront gas price
	// is not profitable. Priority transactions are never checked. The check can
	// be enabled independently for local (API) and remote (P2P) transactions.
	//
	// The validator is safe for concurrent use.
	ProfitabilityValidator struct {
		logger     log.Logger
		chain      chain.Service
		config     ProfitabilityConfig
		calculator *profitability.Calculator
		reporter   reporter.Reporter
		nodeType   reporter.NodeType
	}
)

// NewProfitabilityValidator returns a new pool profitability validator.
// Rejections are sent to rep, which may be nil.
func NewProfitabilityValidator(
	logger log.Logger,
	chainService chain.Service,
	config ProfitabilityConfig,
	calculator *profitability.Calculator,
	rep reporter.Reporter,
	nodeType reporter.NodeType,
) *ProfitabilityValidator {
	if rep == nil {
		rep = reporter.NoopReporter{}
	}

	return &ProfitabilityValidator{
		logger:     logger.With("module", "mempool"),
		chain:      chainService,
		config:     config,
		calculator: calculator,
		reporter:   rep,
		nodeType:   nodeType,
	}
}

// ValidateTransaction returns a non empty reason if the transaction must not
// enter the pool. An error means the check could not be performed; it wraps
// profitability.ErrNoBaseFeeMarket if the chain has no base fee market.
func (v *ProfitabilityValidator) ValidateTransaction(
	ctx context.Context,
	tx *types.Transaction,
	isLocal, hasPriority bool,
) (string, error) {
	if hasPriority || !v.checkEnabled(isLocal) {
		return "", nil
	}

	baseFee, err := v.chain.NextBlockBaseFee(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get next block base fee")
	}
	if baseFee == nil {
		return "", profitability.ErrNoBaseFeeMarket
	}

	head, err := v.chain.ChainHeadHeader(ctx)
	if err != nil {
		return "", err
	}

	pricing, err := profitability.ExtractPricingFromExtraData(head.Extra)
	if err != nil {
		return "", errors.Wrapf(err, "chain head %s", head.Number)
	}

	profitable := v.calculator.IsProfitable(
		TxPoolLabel,
		tx,
		v.config.MinMargin,
		baseFee,
		profitability.UpfrontGasPrice(tx, baseFee),
		tx.Gas(),
		v.config.MinGasPrice,
		pricing,
	)
	if profitable {
		return "", nil
	}

	v.logger.Debug("rejecting unprofitable transaction", "tx_hash", tx.Hash().Hex(), "local", isLocal)
	v.reporter.Report(reporter.NewRecord(v.nodeType, tx, time.Now(), nil, ReasonGasPriceTooLow))

	return ReasonGasPriceTooLow, nil
}

func (v *ProfitabilityValidator) checkEnabled(isLocal bool) bool {
	if isLocal {
		return v.config.CheckAPIEnabled
	}

	return v.config.CheckP2PEnabled
}
