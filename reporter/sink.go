package reporter

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// SaveRejectedTransactionMethod is the JSON-RPC method rejected transactions
// are submitted to.
const SaveRejectedTransactionMethod = "linea_saveRejectedTransactionV1"

type (
	// Sink delivers a single record to an external system.
	Sink interface {
		Submit(ctx context.Context, rec Record) error
	}

	// RejectedTransactionParams is the JSON-RPC payload of a rejected
	// transaction.
	RejectedTransactionParams struct {
		NodeType           string   `json:"nodeType"`
		TransactionPayload string   `json:"transactionPayload"`
		Timestamp          string   `json:"timestamp"`
		BlockNumber        *uint64  `json:"blockNumber,omitempty"`
		Reason             string   `json:"reason"`
		Extra              []string `json:"extra"`
	}

	// RPCSink submits records through a JSON-RPC client.
	RPCSink struct {
		client *rpc.Client
	}
)

var _ Sink = (*RPCSink)(nil)

// NewRPCSink returns a sink that calls SaveRejectedTransactionMethod on the
// given client.
func NewRPCSink(client *rpc.Client) *RPCSink {
	return &RPCSink{client: client}
}

// DialRPCSink connects to the rejected transaction endpoint.
func DialRPCSink(ctx context.Context, endpoint string) (*RPCSink, error) {
	client, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return NewRPCSink(client), nil
}

// Submit implements Sink.
func (s *RPCSink) Submit(ctx context.Context, rec Record) error {
	params, err := NewRejectedTransactionParams(rec)
	if err != nil {
		return err
	}

	var status string
	return s.client.CallContext(ctx, &status, SaveRejectedTransactionMethod, params)
}

// Close closes the underlying client.
func (s *RPCSink) Close() {
	s.client.Close()
}

// NewRejectedTransactionParams converts a record into its wire payload.
func NewRejectedTransactionParams(rec Record) (RejectedTransactionParams, error) {
	txBz, err := rec.Tx.MarshalBinary()
	if err != nil {
		return RejectedTransactionParams{}, err
	}

	extra := rec.Extra
	if extra == nil {
		extra = []string{}
	}

	return RejectedTransactionParams{
		NodeType:           string(rec.NodeType),
		TransactionPayload: hexutil.Encode(txBz),
		Timestamp:          rec.Timestamp.UTC().Format(time.RFC3339Nano),
		BlockNumber:        rec.BlockNumber,
		Reason:             rec.Reason,
		Extra:              extra,
	}, nil
}
