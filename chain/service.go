package chain

import (
	"context"
	"math/big"

	"cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/consensus/misc/eip1559"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
)

type (
	// Service gives read access to the chain head. Implementations must be safe
	// for concurrent use.
	Service interface {
		// NextBlockBaseFee returns the base fee of the next block. It returns a
		// nil fee if the chain does not run a base fee market.
		NextBlockBaseFee(ctx context.Context) (*uint256.Int, error)

		// ChainHeadHeader returns the header of the latest block.
		ChainHeadHeader(ctx context.Context) (*types.Header, error)
	}

	// HeaderReader is the subset of ethclient.Client used by EthService.
	HeaderReader interface {
		HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
		ChainID(ctx context.Context) (*big.Int, error)
	}

	// EthService implements Service on top of an Ethereum JSON-RPC client.
	EthService struct {
		client HeaderReader
		config *params.ChainConfig
	}
)

var _ Service = (*EthService)(nil)

// ErrBaseFeeOverflow is returned when the computed base fee does not fit in
// 256 bits.
var ErrBaseFeeOverflow = errors.Register("chain", 2, "base fee overflows 256 bits")

// NewEthService returns a chain service reading from client. The chain config
// decides whether the next block runs a base fee market.
func NewEthService(client HeaderReader, config *params.ChainConfig) *EthService {
	return &EthService{
		client: client,
		config: config,
	}
}

// DialEthService returns a chain service for the chain client is connected
// to. The chain id is read from the node; the base fee market activates at
// londonBlock.
func DialEthService(ctx context.Context, client HeaderReader, londonBlock uint64) (*EthService, error) {
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain id")
	}

	return NewEthService(client, LondonChainConfig(chainID, londonBlock)), nil
}

// LondonChainConfig returns a chain config with every fork up to London
// active and London activating at londonBlock.
func LondonChainConfig(chainID *big.Int, londonBlock uint64) *params.ChainConfig {
	cfg := *params.AllEthashProtocolChanges
	cfg.ChainID = chainID
	cfg.LondonBlock = new(big.Int).SetUint64(londonBlock)

	return &cfg
}

// NextBlockBaseFee implements Service.
func (s *EthService) NextBlockBaseFee(ctx context.Context) (*uint256.Int, error) {
	head, err := s.ChainHeadHeader(ctx)
	if err != nil {
		return nil, err
	}

	next := new(big.Int).Add(head.Number, big.NewInt(1))
	if !s.config.IsLondon(next) {
		return nil, nil
	}

	baseFee, overflow := uint256.FromBig(eip1559.CalcBaseFee(s.config, head))
	if overflow {
		return nil, errors.Wrapf(ErrBaseFeeOverflow, "block %s", next)
	}

	return baseFee, nil
}

// ChainHeadHeader implements Service.
func (s *EthService) ChainHeadHeader(ctx context.Context) (*types.Header, error) {
	head, err := s.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain head header")
	}

	return head, nil
}
