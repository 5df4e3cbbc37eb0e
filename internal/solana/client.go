package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/nothingdao/solana-support/internal/config"
)

// TxStatus is the chain's verdict on a referenced transfer.
type TxStatus int

const (
	TxNotFound TxStatus = iota
	TxConfirmed
	TxFailed
)

func (s TxStatus) String() string {
	switch s {
	case TxConfirmed:
		return "confirmed"
	case TxFailed:
		return "failed"
	default:
		return "not_found"
	}
}

// Client is the process-wide Solana RPC client. It is created once at
// startup and shared, never per request.
type Client struct {
	rpc        *rpc.Client
	commitment rpc.CommitmentType
	timeout    time.Duration
}

func Init(cfg config.SolanaConfig) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, errors.New("solana rpc_url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		rpc:        rpc.New(cfg.RPCURL),
		commitment: parseCommitment(cfg.Commitment),
		timeout:    timeout,
	}, nil
}

// LookupTransaction queries the chain for a transaction signature.
// A malformed or unknown signature is TxNotFound. A transaction whose
// meta carries an error is TxFailed. Transport failures and timeouts
// come back as an error; the caller decides the degrade policy.
func (c *Client) LookupTransaction(ctx context.Context, signature string) (TxStatus, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return TxNotFound, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	maxVersion := rpc.MaxSupportedTransactionVersion0
	out, err := c.rpc.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Commitment:                     c.commitment,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return TxNotFound, nil
		}
		return TxNotFound, fmt.Errorf("transaction lookup failed: %w", err)
	}
	if out == nil {
		return TxNotFound, nil
	}

	// meta is nullable in the RPC response; without it the transfer's
	// success is unknown, so it cannot count as confirmed.
	if out.Meta == nil {
		return TxNotFound, nil
	}
	if out.Meta.Err != nil {
		return TxFailed, nil
	}

	return TxConfirmed, nil
}

// ValidateAddress checks that an address is a valid base58 public key.
func ValidateAddress(address string) error {
	if _, err := solana.PublicKeyFromBase58(address); err != nil {
		return fmt.Errorf("invalid solana address: %w", err)
	}
	return nil
}

func parseCommitment(s string) rpc.CommitmentType {
	switch s {
	case "processed":
		return rpc.CommitmentProcessed
	case "finalized":
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentConfirmed
	}
}
