package config

import (
	"strings"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/holiman/uint256"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/skip-mev/sequencer/reporter"
)

// EnvPrefix is the prefix of the environment variables read by FromViper.
const EnvPrefix = "SEQUENCER"

const (
	DefaultMinGasPrice            = 1_000_000
	DefaultUnprofitableCacheSize  = 100_000
	DefaultUnprofitableRetryLimit = 10
	DefaultMaxBlockCallDataSize   = 70_000
	DefaultMaxGasPerBlock         = 30_000_000
)

const (
	// FlagConfigFile points to an optional TOML file. Flags and environment
	// variables take precedence over it.
	FlagConfigFile = "config"

	FlagMinGasPrice = "min-gas-price"

	FlagMinMargin              = "profitability.min-margin"
	FlagTxPoolMinMargin        = "profitability.tx-pool-min-margin"
	FlagTxPoolCheckAPIEnabled  = "profitability.tx-pool-check-api-enabled"
	FlagTxPoolCheckP2PEnabled  = "profitability.tx-pool-check-p2p-enabled"
	FlagUnprofitableCacheSize  = "profitability.unprofitable-cache-size"
	FlagUnprofitableRetryLimit = "profitability.unprofitable-retry-limit"

	FlagMaxBlockCallDataSize = "selector.max-block-calldata-size"
	FlagMaxGasPerBlock       = "selector.max-gas-per-block"

	// KeyModuleLimits is only read from the config file: a table of module
	// name to trace line limit.
	KeyModuleLimits = "selector.module-limits"

	FlagReporterEndpoint   = "reporter.endpoint"
	FlagReporterNodeType   = "reporter.node-type"
	FlagReporterQueueSize  = "reporter.queue-size"
	FlagReporterAttempts   = "reporter.attempts"
	FlagReporterRetryDelay = "reporter.retry-delay"
	FlagReporterTimeout    = "reporter.timeout"
)

// AddFlags registers the configuration flags with their default values.
func AddFlags(flags *pflag.FlagSet) {
	def := DefaultConfig()

	flags.String(FlagConfigFile, "", "path to a TOML config file; required for selector.module-limits")
	flags.String(FlagMinGasPrice, def.MinGasPrice.Dec(), "minimum gas price in wei")

	flags.String(FlagMinMargin, def.Profitability.MinMargin.String(), "profitability margin applied when building blocks")
	flags.String(FlagTxPoolMinMargin, def.Profitability.TxPoolMinMargin.String(), "profitability margin applied on pool admission")
	flags.Bool(FlagTxPoolCheckAPIEnabled, def.Profitability.TxPoolCheckAPIEnabled, "check the profitability of transactions received through the API")
	flags.Bool(FlagTxPoolCheckP2PEnabled, def.Profitability.TxPoolCheckP2PEnabled, "check the profitability of transactions received from peers")
	flags.Int(FlagUnprofitableCacheSize, def.Profitability.UnprofitableCacheSize, "number of unprofitable transactions remembered across blocks")
	flags.Int(FlagUnprofitableRetryLimit, def.Profitability.UnprofitableRetryLimit, "number of previously unprofitable transactions retried per block")

	flags.Int(FlagMaxBlockCallDataSize, def.Selector.MaxBlockCallDataSize, "maximum call data bytes per block")
	flags.Uint64(FlagMaxGasPerBlock, def.Selector.MaxGasPerBlock, "maximum gas used per block")

	flags.String(FlagReporterEndpoint, def.Reporter.Endpoint, "JSON-RPC endpoint receiving rejected transactions; disabled if empty")
	flags.String(FlagReporterNodeType, string(def.Reporter.NodeType), "node type attached to rejected transactions (SEQUENCER, RPC, P2P)")
	flags.Int(FlagReporterQueueSize, def.Reporter.QueueSize, "maximum number of pending rejected transaction reports")
	flags.Uint(FlagReporterAttempts, def.Reporter.Attempts, "submission attempts per rejected transaction report")
	flags.Duration(FlagReporterRetryDelay, def.Reporter.RetryDelay, "delay between submission attempts")
	flags.Duration(FlagReporterTimeout, def.Reporter.Timeout, "timeout of a single submission attempt")
}

// NewViper returns a viper instance bound to flags, to SEQUENCER_*
// environment variables and to the config file, if any.
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	if path := v.GetString(FlagConfigFile); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "failed to read config file %s: %s", path, err)
		}
	}

	return v, nil
}

// FromViper reads the configuration. Keys that are not set keep their default
// value. Values that cannot be parsed are rejected; callers validate the
// result with Validate or ValidatePool depending on what they run.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()

	if v.IsSet(FlagMinGasPrice) {
		minGasPrice, err := uint256.FromDecimal(v.GetString(FlagMinGasPrice))
		if err != nil {
			return cfg, errors.Wrapf(ErrInvalidConfig, "invalid %s: %s", FlagMinGasPrice, err)
		}
		cfg.MinGasPrice = minGasPrice
	}

	if err := readDec(v, FlagMinMargin, &cfg.Profitability.MinMargin); err != nil {
		return cfg, err
	}
	if err := readDec(v, FlagTxPoolMinMargin, &cfg.Profitability.TxPoolMinMargin); err != nil {
		return cfg, err
	}
	if v.IsSet(FlagTxPoolCheckAPIEnabled) {
		cfg.Profitability.TxPoolCheckAPIEnabled = v.GetBool(FlagTxPoolCheckAPIEnabled)
	}
	if v.IsSet(FlagTxPoolCheckP2PEnabled) {
		cfg.Profitability.TxPoolCheckP2PEnabled = v.GetBool(FlagTxPoolCheckP2PEnabled)
	}
	if v.IsSet(FlagUnprofitableCacheSize) {
		cfg.Profitability.UnprofitableCacheSize = v.GetInt(FlagUnprofitableCacheSize)
	}
	if v.IsSet(FlagUnprofitableRetryLimit) {
		cfg.Profitability.UnprofitableRetryLimit = v.GetInt(FlagUnprofitableRetryLimit)
	}

	if v.IsSet(FlagMaxBlockCallDataSize) {
		cfg.Selector.MaxBlockCallDataSize = v.GetInt(FlagMaxBlockCallDataSize)
	}
	if v.IsSet(FlagMaxGasPerBlock) {
		cfg.Selector.MaxGasPerBlock = v.GetUint64(FlagMaxGasPerBlock)
	}
	// Viper lower cases keys; module names are upper case.
	for module, raw := range v.GetStringMap(KeyModuleLimits) {
		limit, err := cast.ToUint64E(raw)
		if err != nil {
			return cfg, errors.Wrapf(ErrInvalidConfig, "invalid line limit for module %s: %s", module, err)
		}
		cfg.Selector.ModuleLimits[strings.ToUpper(module)] = limit
	}

	if v.IsSet(FlagReporterEndpoint) {
		cfg.Reporter.Endpoint = v.GetString(FlagReporterEndpoint)
	}
	if v.IsSet(FlagReporterNodeType) {
		cfg.Reporter.NodeType = reporter.NodeType(strings.ToUpper(v.GetString(FlagReporterNodeType)))
	}
	if v.IsSet(FlagReporterQueueSize) {
		cfg.Reporter.QueueSize = v.GetInt(FlagReporterQueueSize)
	}
	if v.IsSet(FlagReporterAttempts) {
		cfg.Reporter.Attempts = v.GetUint(FlagReporterAttempts)
	}
	if v.IsSet(FlagReporterRetryDelay) {
		cfg.Reporter.RetryDelay = v.GetDuration(FlagReporterRetryDelay)
	}
	if v.IsSet(FlagReporterTimeout) {
		cfg.Reporter.Timeout = v.GetDuration(FlagReporterTimeout)
	}

	return cfg, nil
}

func readDec(v *viper.Viper, key string, dst *math.LegacyDec) error {
	if !v.IsSet(key) {
		return nil
	}

	dec, err := math.LegacyNewDecFromStr(v.GetString(key))
	if err != nil {
		return errors.Wrapf(ErrInvalidConfig, "invalid %s: %s", key, err)
	}
	*dst = dec

	return nil
}
