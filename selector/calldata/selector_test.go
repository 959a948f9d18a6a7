package calldata_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skip-mev/sequencer/selector"
	"github.com/skip-mev/sequencer/selector/calldata"
	testutils "github.com/skip-mev/sequencer/testutils"
)

func TestCallDataSelector(t *testing.T) {
	ctx := context.Background()
	r := rand.New(rand.NewSource(1))
	account := testutils.RandomAccounts(r, 1)[0]

	evalCtx := func(size int) *selector.EvaluationContext {
		tx, err := testutils.CreateDynamicFeeTx(account, 0, 100_000, 30, 5, testutils.RandomData(r, size))
		require.NoError(t, err)
		return &selector.EvaluationContext{Tx: tx}
	}

	s := calldata.NewSelector(100)

	first := evalCtx(60)
	require.True(t, s.EvaluatePreProcessing(ctx, first).IsSelected())
	s.OnSelected(ctx, first, nil)
	require.Equal(t, 60, s.CumulativeSize())

	// 60 + 50 > 100
	tooLarge := evalCtx(50)
	result := s.EvaluatePreProcessing(ctx, tooLarge)
	require.Equal(t, calldata.BlockCallDataOverflow, result)
	require.False(t, result.Discard())
	s.OnNotSelected(ctx, tooLarge, result)
	require.Equal(t, 60, s.CumulativeSize())

	// 60 + 40 fills the block exactly.
	fits := evalCtx(40)
	require.True(t, s.EvaluatePreProcessing(ctx, fits).IsSelected())
	require.True(t, s.EvaluatePostProcessing(ctx, fits, nil).IsSelected())
	s.OnSelected(ctx, fits, nil)
	require.Equal(t, 100, s.CumulativeSize())

	require.True(t, s.EvaluatePreProcessing(ctx, evalCtx(0)).IsSelected())
	require.Equal(t, calldata.BlockCallDataOverflow, s.EvaluatePreProcessing(ctx, evalCtx(1)))
}
