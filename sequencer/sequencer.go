package sequencer

import (
	"context"

	"github.com/cometbft/cometbft/libs/log"

	"github.com/skip-mev/sequencer/chain"
	"github.com/skip-mev/sequencer/config"
	"github.com/skip-mev/sequencer/mempool"
	"github.com/skip-mev/sequencer/profitability"
	"github.com/skip-mev/sequencer/reporter"
	"github.com/skip-mev/sequencer/selector"
	"github.com/skip-mev/sequencer/selector/calldata"
	"github.com/skip-mev/sequencer/selector/gas"
	"github.com/skip-mev/sequencer/selector/profitable"
	"github.com/skip-mev/sequencer/selector/tracelimit"
)

// Sequencer owns the components that outlive a single block: configuration,
// chain access, the rejected transaction reporter and the unprofitable
// transaction cache. It hands out a pool validator and a fresh selector chain
// for every block.
type Sequencer struct {
	logger     log.Logger
	config     config.Config
	chain      chain.Service
	calculator *profitability.Calculator
	reporter   reporter.Reporter

	unprofitable *profitable.UnprofitableCache
}

// New returns a new sequencer. rep may be nil, in which case nothing is
// reported.
func New(
	logger log.Logger,
	cfg config.Config,
	chainService chain.Service,
	rep reporter.Reporter,
	metrics profitability.Metrics,
) (*Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	unprofitable, err := profitable.NewUnprofitableCache(cfg.Profitability.UnprofitableCacheSize)
	if err != nil {
		return nil, err
	}

	if rep == nil {
		rep = reporter.NoopReporter{}
	}

	return &Sequencer{
		logger:       logger,
		config:       cfg,
		chain:        chainService,
		calculator:   profitability.NewCalculator(logger, metrics),
		reporter:     rep,
		unprofitable: unprofitable,
	}, nil
}

// NewReporter builds the reporter described by cfg. It returns a
// NoopReporter when no endpoint is configured. The returned stop function
// must be called on shutdown.
func NewReporter(ctx context.Context, logger log.Logger, cfg config.ReporterConfig) (reporter.Reporter, func(), error) {
	if cfg.Endpoint == "" {
		return reporter.NoopReporter{}, func() {}, nil
	}

	sink, err := reporter.DialRPCSink(ctx, cfg.Endpoint)
	if err != nil {
		return nil, nil, err
	}

	r := reporter.NewAsyncReporter(logger, sink, cfg.ReporterOptions())
	if err := r.Start(); err != nil {
		sink.Close()
		return nil, nil, err
	}

	stop := func() {
		if err := r.Stop(); err != nil {
			logger.Error("failed to stop rejected tx reporter", "err", err)
		}
		sink.Close()
	}

	return r, stop, nil
}

// ProfitabilityValidator returns the pool admission validator.
func (s *Sequencer) ProfitabilityValidator() *mempool.ProfitabilityValidator {
	return newProfitabilityValidator(s.logger, s.config, s.chain, s.calculator, s.reporter)
}

// NewProfitabilityValidator returns a pool admission validator for nodes that
// do not build blocks, such as RPC nodes. Only the pool configuration is
// validated. rep may be nil.
func NewProfitabilityValidator(
	logger log.Logger,
	cfg config.Config,
	chainService chain.Service,
	rep reporter.Reporter,
	metrics profitability.Metrics,
) (*mempool.ProfitabilityValidator, error) {
	if err := cfg.ValidatePool(); err != nil {
		return nil, err
	}

	if rep == nil {
		rep = reporter.NoopReporter{}
	}

	return newProfitabilityValidator(logger, cfg, chainService, profitability.NewCalculator(logger, metrics), rep), nil
}

func newProfitabilityValidator(
	logger log.Logger,
	cfg config.Config,
	chainService chain.Service,
	calculator *profitability.Calculator,
	rep reporter.Reporter,
) *mempool.ProfitabilityValidator {
	return mempool.NewProfitabilityValidator(
		logger,
		chainService,
		mempool.ProfitabilityConfig{
			MinMargin:       cfg.Profitability.TxPoolMinMargin,
			CheckAPIEnabled: cfg.Profitability.TxPoolCheckAPIEnabled,
			CheckP2PEnabled: cfg.Profitability.TxPoolCheckP2PEnabled,
			MinGasPrice:     cfg.MinGasPrice,
		},
		calculator,
		rep,
		cfg.Reporter.NodeType,
	)
}

// NewTransactionSelector returns the selector chain for a new block. The
// selectors run in a fixed order: the size checks first, then the
// profitability check, then the trace line limit.
func (s *Sequencer) NewTransactionSelector(counter tracelimit.LineCounter) *selector.Chain {
	return selector.NewChain(
		s.logger,
		s.reporter,
		s.config.Reporter.NodeType,
		calldata.NewSelector(s.config.Selector.MaxBlockCallDataSize),
		gas.NewSelector(s.config.Selector.MaxGasPerBlock),
		profitable.NewSelector(
			s.logger,
			s.chain,
			s.calculator,
			profitable.Config{
				MinMargin:              s.config.Profitability.MinMargin,
				UnprofitableRetryLimit: s.config.Profitability.UnprofitableRetryLimit,
			},
			s.unprofitable,
		),
		tracelimit.NewSelector(s.logger, counter, s.config.Selector.ModuleLimits),
	)
}
