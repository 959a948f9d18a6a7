package selector

import (
	"context"

	"github.com/ethereum/go-ethereum/core"
)

var _ Selector = BaseSelector{}

// BaseSelector selects every transaction and ignores notifications. Selectors
// embed it and override only the phases they care about.
type BaseSelector struct{}

func (BaseSelector) EvaluatePreProcessing(context.Context, *EvaluationContext) Result {
	return Selected
}

func (BaseSelector) EvaluatePostProcessing(context.Context, *EvaluationContext, *core.ExecutionResult) Result {
	return Selected
}

func (BaseSelector) OnSelected(context.Context, *EvaluationContext, *core.ExecutionResult) {}

func (BaseSelector) OnNotSelected(context.Context, *EvaluationContext, Result) {}
