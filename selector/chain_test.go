package selector_test

import (
	"context"
	"math/big"
	"math/rand"
	"testing"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/skip-mev/sequencer/profitability"
	"github.com/skip-mev/sequencer/reporter"
	"github.com/skip-mev/sequencer/selector"
	testutils "github.com/skip-mev/sequencer/testutils"
)

var (
	rejectKeep    = selector.NewRejection("KEEP", false)
	rejectDiscard = selector.NewRejection("DISCARD", true)
)

type ChainTestSuite struct {
	suite.Suite

	ctx      context.Context
	ctrl     *gomock.Controller
	reporter *testutils.MockReporter
	evalCtx  *selector.EvaluationContext
	res      *core.ExecutionResult
}

func TestChainTestSuite(t *testing.T) {
	suite.Run(t, new(ChainTestSuite))
}

func (suite *ChainTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.ctrl = gomock.NewController(suite.T())
	suite.reporter = testutils.NewMockReporter(suite.ctrl)

	accounts := testutils.RandomAccounts(rand.New(rand.NewSource(1)), 1)
	tx, err := testutils.CreateDynamicFeeTx(accounts[0], 0, 21000, 30, 5, nil)
	suite.Require().NoError(err)

	suite.evalCtx = &selector.EvaluationContext{
		Tx:                 tx,
		PendingBlockHeader: testutils.CreateHeader(42, big.NewInt(10), profitability.PricingData{}),
	}
	suite.res = &core.ExecutionResult{UsedGas: 21000}
}

func (suite *ChainTestSuite) newChain(selectors ...selector.Selector) *selector.Chain {
	return selector.NewChain(log.NewNopLogger(), suite.reporter, reporter.NodeTypeSequencer, selectors...)
}

func (suite *ChainTestSuite) TestEvaluatePreProcessingShortCircuits() {
	first := testutils.NewMockSelector(suite.ctrl)
	second := testutils.NewMockSelector(suite.ctrl)
	third := testutils.NewMockSelector(suite.ctrl)

	gomock.InOrder(
		first.EXPECT().EvaluatePreProcessing(suite.ctx, suite.evalCtx).Return(selector.Selected),
		second.EXPECT().EvaluatePreProcessing(suite.ctx, suite.evalCtx).Return(rejectKeep),
	)
	third.EXPECT().EvaluatePreProcessing(gomock.Any(), gomock.Any()).Times(0)

	result := suite.newChain(first, second, third).EvaluatePreProcessing(suite.ctx, suite.evalCtx)
	suite.Require().Equal(rejectKeep, result)
}

func (suite *ChainTestSuite) TestEvaluatePostProcessingShortCircuits() {
	first := testutils.NewMockSelector(suite.ctrl)
	second := testutils.NewMockSelector(suite.ctrl)

	first.EXPECT().EvaluatePostProcessing(suite.ctx, suite.evalCtx, suite.res).Return(rejectDiscard)
	second.EXPECT().EvaluatePostProcessing(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result := suite.newChain(first, second).EvaluatePostProcessing(suite.ctx, suite.evalCtx, suite.res)
	suite.Require().Equal(rejectDiscard, result)
}

func (suite *ChainTestSuite) TestEvaluateAllSelected() {
	first := testutils.NewMockSelector(suite.ctrl)
	second := testutils.NewMockSelector(suite.ctrl)

	first.EXPECT().EvaluatePreProcessing(suite.ctx, suite.evalCtx).Return(selector.Selected)
	second.EXPECT().EvaluatePreProcessing(suite.ctx, suite.evalCtx).Return(selector.Selected)
	first.EXPECT().EvaluatePostProcessing(suite.ctx, suite.evalCtx, suite.res).Return(selector.Selected)
	second.EXPECT().EvaluatePostProcessing(suite.ctx, suite.evalCtx, suite.res).Return(selector.Selected)

	c := suite.newChain(first, second)
	suite.Require().True(c.EvaluatePreProcessing(suite.ctx, suite.evalCtx).IsSelected())
	suite.Require().True(c.EvaluatePostProcessing(suite.ctx, suite.evalCtx, suite.res).IsSelected())
}

func (suite *ChainTestSuite) TestEmptyChainSelects() {
	c := suite.newChain()

	suite.Require().Equal(selector.Selected, c.EvaluatePreProcessing(suite.ctx, suite.evalCtx))
	suite.Require().Equal(selector.Selected, c.EvaluatePostProcessing(suite.ctx, suite.evalCtx, suite.res))
	suite.Require().Nil(c.Tracer())
}

func (suite *ChainTestSuite) TestOnTransactionSelectedNotifiesInOrder() {
	first := testutils.NewMockSelector(suite.ctrl)
	second := testutils.NewMockSelector(suite.ctrl)

	gomock.InOrder(
		first.EXPECT().OnSelected(suite.ctx, suite.evalCtx, suite.res),
		second.EXPECT().OnSelected(suite.ctx, suite.evalCtx, suite.res),
	)
	suite.reporter.EXPECT().Report(gomock.Any()).Times(0)

	suite.newChain(first, second).OnTransactionSelected(suite.ctx, suite.evalCtx, suite.res)
}

func (suite *ChainTestSuite) TestOnTransactionNotSelected() {
	cases := []struct {
		name     string
		result   selector.Result
		reported bool
	}{
		{"non discardable rejection is not reported", rejectKeep, false},
		{"discardable rejection is reported", rejectDiscard, true},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.SetupTest()

			first := testutils.NewMockSelector(suite.ctrl)
			second := testutils.NewMockSelector(suite.ctrl)

			first.EXPECT().OnNotSelected(suite.ctx, suite.evalCtx, tc.result)
			second.EXPECT().OnNotSelected(suite.ctx, suite.evalCtx, tc.result)

			if tc.reported {
				suite.reporter.EXPECT().Report(gomock.Any()).Do(func(rec reporter.Record) {
					suite.Require().Equal(reporter.NodeTypeSequencer, rec.NodeType)
					suite.Require().Equal(suite.evalCtx.Tx.Hash(), rec.Tx.Hash())
					suite.Require().NotNil(rec.BlockNumber)
					suite.Require().Equal(uint64(42), *rec.BlockNumber)
					suite.Require().Equal("DISCARD", rec.Reason)
					suite.Require().Empty(rec.Extra)
					suite.Require().False(rec.Timestamp.IsZero())
				})
			} else {
				suite.reporter.EXPECT().Report(gomock.Any()).Times(0)
			}

			suite.newChain(first, second).OnTransactionNotSelected(suite.ctx, suite.evalCtx, tc.result)
		})
	}
}

func (suite *ChainTestSuite) TestEvaluationIsIdempotent() {
	first := testutils.NewMockSelector(suite.ctrl)
	first.EXPECT().EvaluatePreProcessing(suite.ctx, suite.evalCtx).Return(rejectKeep).Times(2)

	c := suite.newChain(first)
	suite.Require().Equal(
		c.EvaluatePreProcessing(suite.ctx, suite.evalCtx),
		c.EvaluatePreProcessing(suite.ctx, suite.evalCtx),
	)
}

type tracingSelector struct {
	selector.BaseSelector
	hooks *tracing.Hooks
}

func (s tracingSelector) Tracer() *tracing.Hooks { return s.hooks }

func (suite *ChainTestSuite) TestTracerForwardsFirstProvider() {
	hooks := &tracing.Hooks{}
	other := &tracing.Hooks{}

	c := suite.newChain(
		selector.BaseSelector{},
		tracingSelector{hooks: hooks},
		tracingSelector{hooks: other},
	)
	suite.Require().Same(hooks, c.Tracer())
}

func (suite *ChainTestSuite) TestNilReporterIsNoop() {
	c := selector.NewChain(log.NewNopLogger(), nil, reporter.NodeTypeSequencer, selector.BaseSelector{})

	suite.Require().NotPanics(func() {
		c.OnTransactionNotSelected(suite.ctx, suite.evalCtx, rejectDiscard)
	})
}
