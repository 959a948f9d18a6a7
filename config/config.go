package config

import (
	"time"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/skip-mev/sequencer/reporter"
)

// ErrInvalidConfig is returned for configuration that fails validation.
var ErrInvalidConfig = errors.Register("config", 2, "invalid configuration")

type (
	// Config is the configuration of transaction admission and selection.
	Config struct {
		// MinGasPrice is the node's minimum gas price in wei.
		MinGasPrice *uint256.Int

		Profitability ProfitabilityConfig
		Selector      SelectorConfig
		Reporter      ReporterConfig
	}

	// ProfitabilityConfig configures the profitability checks.
	ProfitabilityConfig struct {
		// MinMargin is the margin applied when building blocks.
		MinMargin math.LegacyDec

		// TxPoolMinMargin is the margin applied on pool admission.
		TxPoolMinMargin math.LegacyDec

		// TxPoolCheckAPIEnabled enables the pool check for local transactions.
		TxPoolCheckAPIEnabled bool

		// TxPoolCheckP2PEnabled enables the pool check for remote transactions.
		TxPoolCheckP2PEnabled bool

		// UnprofitableCacheSize bounds the number of unprofitable transactions
		// remembered across blocks.
		UnprofitableCacheSize int

		// UnprofitableRetryLimit is the number of previously unprofitable
		// transactions evaluated again per block.
		UnprofitableRetryLimit int
	}

	// SelectorConfig configures the capacity selectors.
	SelectorConfig struct {
		MaxBlockCallDataSize int
		MaxGasPerBlock       uint64

		// ModuleLimits is the trace line limit per module.
		ModuleLimits map[string]uint64
	}

	// ReporterConfig configures rejected transaction reporting. Reporting is
	// disabled when Endpoint is empty.
	ReporterConfig struct {
		Endpoint   string
		NodeType   reporter.NodeType
		QueueSize  int
		Attempts   uint
		RetryDelay time.Duration
		Timeout    time.Duration
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	options := reporter.DefaultOptions()

	return Config{
		MinGasPrice: uint256.NewInt(DefaultMinGasPrice),
		Profitability: ProfitabilityConfig{
			MinMargin:              math.LegacyZeroDec(),
			TxPoolMinMargin:        math.LegacyZeroDec(),
			TxPoolCheckAPIEnabled:  true,
			TxPoolCheckP2PEnabled:  false,
			UnprofitableCacheSize:  DefaultUnprofitableCacheSize,
			UnprofitableRetryLimit: DefaultUnprofitableRetryLimit,
		},
		Selector: SelectorConfig{
			MaxBlockCallDataSize: DefaultMaxBlockCallDataSize,
			MaxGasPerBlock:       DefaultMaxGasPerBlock,
			ModuleLimits:         map[string]uint64{},
		},
		Reporter: ReporterConfig{
			NodeType:   reporter.NodeTypeSequencer,
			QueueSize:  options.QueueSize,
			Attempts:   options.Attempts,
			RetryDelay: options.RetryDelay,
			Timeout:    options.Timeout,
		},
	}
}

// Validate performs basic validation of the configuration.
func (c Config) Validate() error {
	if err := c.ValidatePool(); err != nil {
		return err
	}

	return c.Selector.Validate()
}

// ValidatePool validates the configuration needed for pool admission only. The
// selector configuration is not checked.
func (c Config) ValidatePool() error {
	if c.MinGasPrice == nil {
		return errors.Wrap(ErrInvalidConfig, "min gas price is not set")
	}

	if err := c.Profitability.Validate(); err != nil {
		return err
	}

	return c.Reporter.Validate()
}

// Validate performs basic validation of the profitability configuration.
func (c ProfitabilityConfig) Validate() error {
	if err := validateMargin("min margin", c.MinMargin); err != nil {
		return err
	}

	if err := validateMargin("tx pool min margin", c.TxPoolMinMargin); err != nil {
		return err
	}

	if c.UnprofitableCacheSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "unprofitable cache size must be positive, got %d", c.UnprofitableCacheSize)
	}

	if c.UnprofitableRetryLimit < 0 {
		return errors.Wrapf(ErrInvalidConfig, "unprofitable retry limit cannot be negative, got %d", c.UnprofitableRetryLimit)
	}

	return nil
}

// Validate performs basic validation of the selector configuration.
func (c SelectorConfig) Validate() error {
	if c.MaxBlockCallDataSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "max block call data size must be positive, got %d", c.MaxBlockCallDataSize)
	}

	if c.MaxGasPerBlock == 0 {
		return errors.Wrap(ErrInvalidConfig, "max gas per block must be positive")
	}

	if len(c.ModuleLimits) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no module line limits configured")
	}

	return nil
}

// Validate performs basic validation of the reporter configuration.
func (c ReporterConfig) Validate() error {
	switch c.NodeType {
	case reporter.NodeTypeSequencer, reporter.NodeTypeRPC, reporter.NodeTypeP2P:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown node type %q", c.NodeType)
	}

	if c.Endpoint == "" {
		return nil
	}

	if c.QueueSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "reporter queue size must be positive, got %d", c.QueueSize)
	}

	if c.Attempts == 0 {
		return errors.Wrap(ErrInvalidConfig, "reporter attempts must be positive")
	}

	if c.Timeout <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "reporter timeout must be positive, got %s", c.Timeout)
	}

	return nil
}

// ReporterOptions returns the options of the asynchronous reporter.
func (c ReporterConfig) ReporterOptions() reporter.Options {
	return reporter.Options{
		QueueSize:  c.QueueSize,
		Attempts:   c.Attempts,
		RetryDelay: c.RetryDelay,
		Timeout:    c.Timeout,
	}
}

func validateMargin(name string, margin math.LegacyDec) error {
	if margin.IsNil() {
		return errors.Wrapf(ErrInvalidConfig, "%s cannot be nil", name)
	}

	if margin.IsNegative() {
		return errors.Wrapf(ErrInvalidConfig, "%s cannot be negative: %s", name, margin)
	}

	return nil
}
