package profitability

import (
	"math/big"

	"cosmossdk.io/math"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/klauspost/compress/zstd"
)

var (
	// decimalScale is 10^18, the fixed point scale of math.LegacyDec.
	decimalScale = math.LegacyOneDec().BigInt()

	maxUint256 = new(uint256.Int).SetAllOne()

	// compressor is shared by all calculators. EncodeAll is safe for
	// concurrent use.
	compressor = mustNewCompressor()
)

// Calculator decides whether the price a transaction is willing to pay covers
// the estimated cost of including it. It holds no pricing state and is safe
// for concurrent use.
type Calculator struct {
	logger  log.Logger
	metrics Metrics
}

// NewCalculator returns a new profitability calculator.
func NewCalculator(logger log.Logger, metrics Metrics) *Calculator {
	if metrics == nil {
		metrics = NoopMetrics{}
	}

	return &Calculator{
		logger:  logger.With("module", ModuleName),
		metrics: metrics,
	}
}

// IsProfitable returns true if the upfront price is at least the minimum gas
// price and if the upfront price paid for gasLimit units of gas, increased by
// the minimum margin, covers the estimated cost of the transaction. The label
// tags the emitted metric.
func (c *Calculator) IsProfitable(
	label string,
	tx *types.Transaction,
	minMargin math.LegacyDec,
	referencePrice *uint256.Int,
	upfrontPrice *uint256.Int,
	gasLimit uint64,
	minGasPrice *uint256.Int,
	pricing PricingData,
) bool {
	if minMargin.IsNil() {
		minMargin = math.LegacyZeroDec()
	}

	cost := c.EstimatedCost(tx, referencePrice, gasLimit, pricing)

	offered := new(big.Int).Mul(upfrontPrice.ToBig(), new(big.Int).SetUint64(gasLimit))
	offered.Mul(offered, math.LegacyOneDec().Add(minMargin).BigInt())
	required := new(big.Int).Mul(cost.ToBig(), decimalScale)

	aboveFloor := minGasPrice == nil || upfrontPrice.Cmp(minGasPrice) >= 0
	profitable := aboveFloor && offered.Cmp(required) >= 0

	c.metrics.ObserveProfitability(label, profitable, ratio(offered, required))

	if !profitable {
		c.logger.Debug(
			"transaction is not profitable",
			"label", label,
			"tx_hash", tx.Hash().Hex(),
			"upfront_price", upfrontPrice.Dec(),
			"min_gas_price", priceString(minGasPrice),
			"gas", gasLimit,
			"estimated_cost", cost.Dec(),
			"min_margin", minMargin.String(),
		)
	}

	return profitable
}

// EstimatedCost returns the total cost in wei of including the transaction:
// gasLimit units of gas at the reference price plus the fixed cost, and the
// variable cost for every byte of the compressed transaction. The result
// saturates at the maximum uint256 value.
func (c *Calculator) EstimatedCost(
	tx *types.Transaction,
	referencePrice *uint256.Int,
	gasLimit uint64,
	pricing PricingData,
) *uint256.Int {
	perGas, overflow := new(uint256.Int).AddOverflow(referencePrice, &pricing.FixedCost)
	if overflow {
		return new(uint256.Int).Set(maxUint256)
	}

	execution, overflow := new(uint256.Int).MulOverflow(perGas, uint256.NewInt(gasLimit))
	if overflow {
		return new(uint256.Int).Set(maxUint256)
	}

	dataAvailability, overflow := new(uint256.Int).MulOverflow(&pricing.VariableCost, uint256.NewInt(CompressedSize(tx)))
	if overflow {
		return new(uint256.Int).Set(maxUint256)
	}

	total, overflow := new(uint256.Int).AddOverflow(execution, dataAvailability)
	if overflow {
		return new(uint256.Int).Set(maxUint256)
	}

	return total
}

// UpfrontGasPrice returns the price per gas the transaction is guaranteed to
// pay at the given base fee. Fee capped transactions pay the smaller of their
// fee cap and the base fee plus their tip cap; other transactions pay their
// flat gas price.
func UpfrontGasPrice(tx *types.Transaction, baseFee *uint256.Int) *uint256.Int {
	switch tx.Type() {
	case types.LegacyTxType, types.AccessListTxType:
		return FromBig(tx.GasPrice())
	}

	maxFee := FromBig(tx.GasFeeCap())
	effective, overflow := new(uint256.Int).AddOverflow(baseFee, FromBig(tx.GasTipCap()))
	if overflow || maxFee.Cmp(effective) <= 0 {
		return maxFee
	}

	return effective
}

// CompressedSize returns the size in bytes of the compressed binary encoding
// of the transaction.
func CompressedSize(tx *types.Transaction) uint64 {
	bz, err := tx.MarshalBinary()
	if err != nil {
		return tx.Size()
	}

	return uint64(len(compressor.EncodeAll(bz, nil)))
}

// FromBig converts b to a uint256, saturating at the maximum uint256 value. A
// nil b converts to zero.
func FromBig(b *big.Int) *uint256.Int {
	if b == nil {
		return new(uint256.Int)
	}

	v, overflow := uint256.FromBig(b)
	if overflow {
		return new(uint256.Int).Set(maxUint256)
	}

	return v
}

func ratio(offered, required *big.Int) float64 {
	if required.Sign() == 0 {
		return 0
	}

	r, _ := new(big.Rat).SetFrac(offered, required).Float64()
	return r
}

func priceString(p *uint256.Int) string {
	if p == nil {
		return "0"
	}

	return p.Dec()
}

func mustNewCompressor() *zstd.Encoder {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		panic(err)
	}

	return enc
}
