package profitability

import (
	"encoding/binary"

	"cosmossdk.io/errors"
	"github.com/holiman/uint256"
)

const (
	// ExtraDataVersion1 is the only supported layout of the pricing extra data.
	ExtraDataVersion1 byte = 0x01

	// extraDataV1Length is the version byte followed by three uint32 prices.
	extraDataV1Length = 1 + 3*4

	// kwei is the unit the extra data prices are expressed in.
	kwei = 1_000
)

// PricingData holds the chain head pricing parameters used to turn gas usage
// into an estimated settlement cost. All values are in wei.
type PricingData struct {
	// FixedCost is the per gas cost charged on top of the reference price.
	FixedCost uint256.Int

	// VariableCost is the data availability cost per compressed byte.
	VariableCost uint256.Int

	// EthGasPrice is the L1 gas price the sequencer last observed.
	EthGasPrice uint256.Int
}

// ExtractPricingFromExtraData decodes the pricing data embedded in a block
// header's extra data. The layout is a version byte followed by the fixed cost,
// the variable cost and the L1 gas price, each a big endian uint32 in kwei.
func ExtractPricingFromExtraData(extra []byte) (PricingData, error) {
	if len(extra) == 0 {
		return PricingData{}, errors.Wrap(ErrInvalidExtraData, "empty extra data")
	}

	if extra[0] != ExtraDataVersion1 {
		return PricingData{}, errors.Wrapf(ErrInvalidExtraData, "unsupported version %d", extra[0])
	}

	if len(extra) < extraDataV1Length {
		return PricingData{}, errors.Wrapf(
			ErrInvalidExtraData,
			"expected at least %d bytes, got %d", extraDataV1Length, len(extra),
		)
	}

	var pricing PricingData
	pricing.FixedCost.SetUint64(uint64(binary.BigEndian.Uint32(extra[1:5])) * kwei)
	pricing.VariableCost.SetUint64(uint64(binary.BigEndian.Uint32(extra[5:9])) * kwei)
	pricing.EthGasPrice.SetUint64(uint64(binary.BigEndian.Uint32(extra[9:13])) * kwei)

	return pricing, nil
}

// EncodeExtraData is the inverse of ExtractPricingFromExtraData. Values are
// truncated to whole kwei.
func EncodeExtraData(pricing PricingData) []byte {
	extra := make([]byte, extraDataV1Length)
	extra[0] = ExtraDataVersion1
	binary.BigEndian.PutUint32(extra[1:5], toKwei(&pricing.FixedCost))
	binary.BigEndian.PutUint32(extra[5:9], toKwei(&pricing.VariableCost))
	binary.BigEndian.PutUint32(extra[9:13], toKwei(&pricing.EthGasPrice))

	return extra
}

func toKwei(wei *uint256.Int) uint32 {
	return uint32(new(uint256.Int).Div(wei, uint256.NewInt(kwei)).Uint64())
}
