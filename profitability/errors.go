package profitability

import "cosmossdk.io/errors"

// ModuleName is the codespace of the profitability errors.
const ModuleName = "profitability"

var (
	ErrNoBaseFeeMarket  = errors.Register(ModuleName, 2, "only a base fee market is supported")
	ErrInvalidExtraData = errors.Register(ModuleName, 3, "invalid pricing extra data")
)
