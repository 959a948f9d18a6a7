package reporter

import (
	"context"
	"sync"
	"time"

	"github.com/armon/go-metrics"
	"github.com/avast/retry-go/v4"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/cometbft/cometbft/libs/service"
	"github.com/cosmos/cosmos-sdk/telemetry"
)

var _ Reporter = (*AsyncReporter)(nil)

type (
	// Options configures an AsyncReporter.
	Options struct {
		// QueueSize bounds the number of records waiting to be submitted.
		// Records reported while the queue is full are dropped.
		QueueSize int

		// Attempts is the number of times a record is submitted before it is
		// given up on.
		Attempts uint

		// RetryDelay is the base delay between attempts.
		RetryDelay time.Duration

		// Timeout bounds a single submission attempt.
		Timeout time.Duration
	}

	// AsyncReporter hands records to a background worker that submits them to
	// a sink. Report never blocks and submission failures are only logged.
	// Stopping the reporter flushes the queue within drainTimeout.
	AsyncReporter struct {
		service.BaseService

		sink    Sink
		options Options
		queue   chan Record

		stopping chan struct{}
		cancel   context.CancelFunc
		wg       sync.WaitGroup
	}
)

// DefaultOptions returns the default reporter options.
func DefaultOptions() Options {
	return Options{
		QueueSize:  1024,
		Attempts:   3,
		RetryDelay: 100 * time.Millisecond,
		Timeout:    2 * time.Second,
	}
}

// NewAsyncReporter returns a reporter submitting to sink. It must be started
// before records are accepted.
func NewAsyncReporter(logger log.Logger, sink Sink, options Options) *AsyncReporter {
	if options.QueueSize <= 0 {
		options.QueueSize = DefaultOptions().QueueSize
	}
	if options.Attempts == 0 {
		options.Attempts = 1
	}
	if options.Timeout <= 0 {
		options.Timeout = DefaultOptions().Timeout
	}

	r := &AsyncReporter{
		sink:    sink,
		options: options,
		queue:   make(chan Record, options.QueueSize),
	}
	r.BaseService = *service.NewBaseService(logger.With("module", "reporter"), "RejectedTxReporter", r)

	return r
}

// OnStart implements service.Service.
func (r *AsyncReporter) OnStart() error {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.stopping = make(chan struct{})

	r.wg.Add(1)
	go r.run(ctx)

	return nil
}

// OnStop implements service.Service. Report stops accepting records as soon
// as the service is stopped. Records already queued, and the one in flight,
// are still submitted until the drain timeout expires; the rest are dropped.
func (r *AsyncReporter) OnStop() {
	close(r.stopping)

	deadline := time.AfterFunc(r.drainTimeout(), r.cancel)
	defer deadline.Stop()

	r.wg.Wait()
	r.cancel()
}

// Report implements Reporter.
func (r *AsyncReporter) Report(rec Record) {
	if !r.IsRunning() {
		r.Logger.Error("dropping rejected tx report; reporter is not running", "tx_hash", rec.Tx.Hash().Hex())
		incrReports("dropped")
		return
	}

	select {
	case r.queue <- rec:
	default:
		r.Logger.Error("dropping rejected tx report; queue is full", "tx_hash", rec.Tx.Hash().Hex())
		incrReports("dropped")
	}
}

func (r *AsyncReporter) run(ctx context.Context) {
	defer r.wg.Done()

	for {
		select {
		case <-r.stopping:
			r.drain(ctx)
			return
		case rec := <-r.queue:
			r.submit(ctx, rec)
		}
	}
}

func (r *AsyncReporter) drain(ctx context.Context) {
	for {
		select {
		case rec := <-r.queue:
			r.submit(ctx, rec)
		default:
			return
		}
	}
}

// drainTimeout leaves room for one record to use all its attempts.
func (r *AsyncReporter) drainTimeout() time.Duration {
	return r.options.Timeout * time.Duration(r.options.Attempts)
}

func (r *AsyncReporter) submit(ctx context.Context, rec Record) {
	if ctx.Err() != nil {
		r.Logger.Error("dropping rejected tx report; reporter stopped", "tx_hash", rec.Tx.Hash().Hex())
		incrReports("dropped")
		return
	}

	err := retry.Do(
		func() error {
			attemptCtx, cancel := context.WithTimeout(ctx, r.options.Timeout)
			defer cancel()

			return r.sink.Submit(attemptCtx, rec)
		},
		retry.Context(ctx),
		retry.Attempts(r.options.Attempts),
		retry.Delay(r.options.RetryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		r.Logger.Error(
			"failed to submit rejected tx report",
			"tx_hash", rec.Tx.Hash().Hex(),
			"reason", rec.Reason,
			"err", err,
		)
		incrReports("failed")
		return
	}

	r.Logger.Debug("submitted rejected tx report", "tx_hash", rec.Tx.Hash().Hex(), "reason", rec.Reason)
	incrReports("submitted")
}

func incrReports(result string) {
	telemetry.IncrCounterWithLabels(
		[]string{"rejected_tx_reports"},
		1,
		[]metrics.Label{telemetry.NewLabel("result", result)},
	)
}
