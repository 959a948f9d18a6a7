package reporter

import (
	"time"

	"github.com/ethereum/go-ethereum/core/types"
)

// NodeType identifies the role of the node that rejected a transaction.
type NodeType string

const (
	NodeTypeSequencer NodeType = "SEQUENCER"
	NodeTypeRPC       NodeType = "RPC"
	NodeTypeP2P       NodeType = "P2P"
)

type (
	// Record describes a rejected transaction.
	Record struct {
		NodeType  NodeType
		Tx        *types.Transaction
		Timestamp time.Time

		// BlockNumber is nil when the transaction was rejected outside of block
		// building, e.g. on pool admission.
		BlockNumber *uint64

		Reason string

		// Extra is reserved for auxiliary details and is always empty.
		Extra []string
	}

	// Reporter is a fire-and-forget sink for rejected transactions. Report must
	// return immediately and never fail; delivery problems are the reporter's
	// own concern.
	Reporter interface {
		Report(rec Record)
	}
)

// NewRecord returns a record with an empty auxiliary list.
func NewRecord(nodeType NodeType, tx *types.Transaction, timestamp time.Time, blockNumber *uint64, reason string) Record {
	return Record{
		NodeType:    nodeType,
		Tx:          tx,
		Timestamp:   timestamp,
		BlockNumber: blockNumber,
		Reason:      reason,
		Extra:       []string{},
	}
}

var _ Reporter = NoopReporter{}

// NoopReporter is used when no rejected transaction endpoint is configured.
type NoopReporter struct{}

func (NoopReporter) Report(Record) {}
