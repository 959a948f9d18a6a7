package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"cosmossdk.io/errors"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/cosmos/cosmos-sdk/telemetry"
	"github.com/spf13/cobra"

	"github.com/skip-mev/sequencer/chain"
	"github.com/skip-mev/sequencer/config"
	"github.com/skip-mev/sequencer/profitability"
	"github.com/skip-mev/sequencer/sequencer"
)

const (
	flagRPC         = "rpc"
	flagTx          = "tx"
	flagLocal       = "local"
	flagPriority    = "priority"
	flagLondonBlock = "london-block"
	flagLogLevel    = "log-level"
	flagTimeout     = "timeout"
	flagTelemetry   = "telemetry"
)

// NewRootCommand returns the profitcheck command. It runs the pool
// profitability check against a live node for a single raw transaction.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "profitcheck",
		Short:        "Check whether a transaction would be admitted by the profitability validator",
		SilenceUsage: true,
		RunE:         run,
	}

	flags := cmd.Flags()
	flags.String(flagRPC, "http://localhost:8545", "JSON-RPC endpoint of the node")
	flags.String(flagTx, "", "hex encoded signed transaction")
	flags.Bool(flagLocal, true, "treat the transaction as received through the API")
	flags.Bool(flagPriority, false, "treat the transaction as coming from a priority sender")
	flags.Uint64(flagLondonBlock, 0, "block at which the base fee market activates")
	flags.String(flagLogLevel, "info", "log level (debug, info, error, none)")
	flags.Duration(flagTimeout, 10*time.Second, "timeout of the check")
	flags.Bool(flagTelemetry, false, "collect metrics in memory and print them to stderr on exit")
	config.AddFlags(flags)

	_ = cmd.MarkFlagRequired(flagTx)

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(v.GetString(flagLogLevel))
	if err != nil {
		return err
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	txBz, err := hexutil.Decode(v.GetString(flagTx))
	if err != nil {
		return errors.Wrap(err, "invalid transaction hex")
	}

	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(txBz); err != nil {
		return errors.Wrap(err, "invalid transaction")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), v.GetDuration(flagTimeout))
	defer cancel()

	client, err := ethclient.DialContext(ctx, v.GetString(flagRPC))
	if err != nil {
		return err
	}
	defer client.Close()

	chainService, err := chain.DialEthService(ctx, client, v.GetUint64(flagLondonBlock))
	if err != nil {
		return err
	}

	var metrics profitability.Metrics = profitability.NoopMetrics{}
	if v.GetBool(flagTelemetry) {
		m, err := telemetry.New(telemetry.Config{ServiceName: "profitcheck", Enabled: true})
		if err != nil {
			return err
		}
		// Printed after the reporter is stopped so its results are included.
		defer printMetrics(cmd, m)

		metrics = profitability.TelemetryMetrics{}
	}

	// Stopping the reporter flushes the rejection of this transaction, if any.
	rep, stop, err := sequencer.NewReporter(ctx, logger, cfg.Reporter)
	if err != nil {
		return err
	}
	defer stop()

	validator, err := sequencer.NewProfitabilityValidator(logger, cfg, chainService, rep, metrics)
	if err != nil {
		return err
	}

	reason, err := validator.ValidateTransaction(ctx, tx, v.GetBool(flagLocal), v.GetBool(flagPriority))
	if err != nil {
		return err
	}

	if reason != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s rejected: %s\n", tx.Hash().Hex(), reason)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s accepted\n", tx.Hash().Hex())
	return nil
}

func printMetrics(cmd *cobra.Command, m *telemetry.Metrics) {
	res, err := m.Gather(telemetry.FormatText)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed to gather metrics: %s\n", err)
		return
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", res.Metrics)
}

func newLogger(level string) (log.Logger, error) {
	option, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}

	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(os.Stderr)), option), nil
}
