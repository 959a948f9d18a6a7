package mempool_test

import (
	"context"
	"errors"
	"math/big"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"cosmossdk.io/math"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"

	"github.com/skip-mev/sequencer/mempool"
	"github.com/skip-mev/sequencer/profitability"
	"github.com/skip-mev/sequencer/reporter"
	testutils "github.com/skip-mev/sequencer/testutils"
)

type ProfitabilityValidatorTestSuite struct {
	suite.Suite

	ctx      context.Context
	ctrl     *gomock.Controller
	chain    *testutils.MockService
	reporter *testutils.MockReporter
	accounts []testutils.Account
	head     *types.Header
	config   mempool.ProfitabilityConfig
}

func TestProfitabilityValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ProfitabilityValidatorTestSuite))
}

func (suite *ProfitabilityValidatorTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.ctrl = gomock.NewController(suite.T())
	suite.chain = testutils.NewMockService(suite.ctrl)
	suite.reporter = testutils.NewMockReporter(suite.ctrl)
	suite.accounts = testutils.RandomAccounts(rand.New(rand.NewSource(1)), 1)

	var pricing profitability.PricingData
	pricing.FixedCost.SetUint64(1_000)
	suite.head = testutils.CreateHeader(10, big.NewInt(10), pricing)

	suite.config = mempool.ProfitabilityConfig{
		MinMargin:       math.LegacyNewDecWithPrec(1, 1),
		CheckAPIEnabled: true,
		CheckP2PEnabled: false,
		MinGasPrice:     uint256.NewInt(1),
	}
}

func (suite *ProfitabilityValidatorTestSuite) newValidator() *mempool.ProfitabilityValidator {
	return mempool.NewProfitabilityValidator(
		log.NewNopLogger(),
		suite.chain,
		suite.config,
		profitability.NewCalculator(log.NewNopLogger(), nil),
		suite.reporter,
		reporter.NodeTypeRPC,
	)
}

func (suite *ProfitabilityValidatorTestSuite) createTx(price int64) *types.Transaction {
	tx, err := testutils.CreateDynamicFeeTx(suite.accounts[0], 0, 21_000, price, price, nil)
	suite.Require().NoError(err)

	return tx
}

func (suite *ProfitabilityValidatorTestSuite) expectChain(baseFee uint64) {
	suite.chain.EXPECT().NextBlockBaseFee(gomock.Any()).Return(uint256.NewInt(baseFee), nil)
	suite.chain.EXPECT().ChainHeadHeader(gomock.Any()).Return(suite.head, nil)
}

func (suite *ProfitabilityValidatorTestSuite) TestSkippedChecks() {
	cases := []struct {
		name        string
		apiEnabled  bool
		p2pEnabled  bool
		isLocal     bool
		hasPriority bool
	}{
		{"priority local tx", true, true, true, true},
		{"priority remote tx", true, true, false, true},
		{"local tx with api check disabled", false, true, true, false},
		{"remote tx with p2p check disabled", true, false, false, false},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.config.CheckAPIEnabled = tc.apiEnabled
			suite.config.CheckP2PEnabled = tc.p2pEnabled

			// The chain service and the reporter expect no calls.
			reason, err := suite.newValidator().ValidateTransaction(suite.ctx, suite.createTx(1), tc.isLocal, tc.hasPriority)
			suite.Require().NoError(err)
			suite.Require().Empty(reason)
		})
	}
}

func (suite *ProfitabilityValidatorTestSuite) TestProfitableTx() {
	suite.config.CheckP2PEnabled = true

	for _, isLocal := range []bool{true, false} {
		suite.expectChain(10)

		reason, err := suite.newValidator().ValidateTransaction(suite.ctx, suite.createTx(2_000), isLocal, false)
		suite.Require().NoError(err)
		suite.Require().Empty(reason)
	}
}

func (suite *ProfitabilityValidatorTestSuite) TestUnprofitableTxIsReported() {
	tx := suite.createTx(15)
	suite.expectChain(10)

	suite.reporter.EXPECT().Report(gomock.Any()).Do(func(rec reporter.Record) {
		suite.Require().Equal(reporter.NodeTypeRPC, rec.NodeType)
		suite.Require().Equal(tx.Hash(), rec.Tx.Hash())
		suite.Require().Nil(rec.BlockNumber)
		suite.Require().Equal(mempool.ReasonGasPriceTooLow, rec.Reason)
		suite.Require().NotNil(rec.Extra)
		suite.Require().Empty(rec.Extra)
	})

	reason, err := suite.newValidator().ValidateTransaction(suite.ctx, tx, true, false)
	suite.Require().NoError(err)
	suite.Require().Equal("Gas price too low", reason)
}

func (suite *ProfitabilityValidatorTestSuite) TestConcurrentCallers() {
	const (
		workers = 8
		calls   = 20
	)

	suite.config.CheckP2PEnabled = true
	suite.chain.EXPECT().NextBlockBaseFee(gomock.Any()).Return(uint256.NewInt(10), nil).AnyTimes()
	suite.chain.EXPECT().ChainHeadHeader(gomock.Any()).Return(suite.head, nil).AnyTimes()

	var reported atomic.Int32
	suite.reporter.EXPECT().Report(gomock.Any()).Do(func(reporter.Record) {
		reported.Add(1)
	}).AnyTimes()

	validator := suite.newValidator()
	profitable := suite.createTx(2_000)
	unprofitable := suite.createTx(15)

	type outcome struct {
		profitable bool
		reason     string
		err        error
	}
	outcomes := make(chan outcome, workers*calls)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < calls; i++ {
				tx, isProfitable := profitable, true
				if (w+i)%2 == 1 {
					tx, isProfitable = unprofitable, false
				}

				reason, err := validator.ValidateTransaction(suite.ctx, tx, i%3 == 0, false)
				outcomes <- outcome{isProfitable, reason, err}
			}
		}(w)
	}
	wg.Wait()
	close(outcomes)

	var rejected int32
	for o := range outcomes {
		suite.Require().NoError(o.err)
		if o.profitable {
			suite.Require().Empty(o.reason)
			continue
		}
		suite.Require().Equal(mempool.ReasonGasPriceTooLow, o.reason)
		rejected++
	}

	suite.Require().Equal(int32(workers*calls/2), rejected)
	suite.Require().Equal(rejected, reported.Load())
}

func (suite *ProfitabilityValidatorTestSuite) TestBelowMinGasPrice() {
	suite.config.MinGasPrice = uint256.NewInt(5_000)
	suite.expectChain(10)
	suite.reporter.EXPECT().Report(gomock.Any())

	reason, err := suite.newValidator().ValidateTransaction(suite.ctx, suite.createTx(2_000), true, false)
	suite.Require().NoError(err)
	suite.Require().Equal(mempool.ReasonGasPriceTooLow, reason)
}

func (suite *ProfitabilityValidatorTestSuite) TestNoBaseFeeMarket() {
	suite.chain.EXPECT().NextBlockBaseFee(gomock.Any()).Return(nil, nil)

	_, err := suite.newValidator().ValidateTransaction(suite.ctx, suite.createTx(2_000), true, false)
	suite.Require().ErrorIs(err, profitability.ErrNoBaseFeeMarket)
}

func (suite *ProfitabilityValidatorTestSuite) TestChainErrors() {
	suite.Run("base fee error", func() {
		suite.SetupTest()
		suite.chain.EXPECT().NextBlockBaseFee(gomock.Any()).Return(nil, errors.New("not synced"))

		_, err := suite.newValidator().ValidateTransaction(suite.ctx, suite.createTx(2_000), true, false)
		suite.Require().ErrorContains(err, "not synced")
	})

	suite.Run("invalid extra data", func() {
		suite.SetupTest()
		suite.chain.EXPECT().NextBlockBaseFee(gomock.Any()).Return(uint256.NewInt(10), nil)
		suite.chain.EXPECT().ChainHeadHeader(gomock.Any()).Return(&types.Header{Number: big.NewInt(10)}, nil)

		_, err := suite.newValidator().ValidateTransaction(suite.ctx, suite.createTx(2_000), true, false)
		suite.Require().ErrorIs(err, profitability.ErrInvalidExtraData)
	})
}
