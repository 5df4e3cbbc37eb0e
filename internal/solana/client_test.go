package solana

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/nothingdao/solana-support/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	valid := []string{
		"11111111111111111111111111111111",
		"So11111111111111111111111111111111111111112",
		"4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T",
	}
	for _, addr := range valid {
		assert.NoError(t, ValidateAddress(addr), addr)
	}

	invalid := []string{
		"",
		"not-a-wallet",
		"0x52908400098527886E0F7030069857D2E4169EE7", // EVM address
		"abc",
	}
	for _, addr := range invalid {
		assert.Error(t, ValidateAddress(addr), addr)
	}
}

func TestInit(t *testing.T) {
	_, err := Init(config.SolanaConfig{})
	assert.Error(t, err)

	client, err := Init(config.SolanaConfig{RPCURL: "http://localhost:8899"})
	require.NoError(t, err)
	assert.Equal(t, rpc.CommitmentConfirmed, client.commitment)
	assert.Equal(t, 10*time.Second, client.timeout)

	client, err = Init(config.SolanaConfig{
		RPCURL:     "http://localhost:8899",
		Commitment: "finalized",
		Timeout:    2 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, rpc.CommitmentFinalized, client.commitment)
	assert.Equal(t, 2*time.Second, client.timeout)
}

func TestLookupTransaction_MalformedSignature(t *testing.T) {
	// No network call: a signature that fails base58 parsing is simply
	// a transaction the ledger has never seen.
	client, err := Init(config.SolanaConfig{RPCURL: "http://localhost:8899"})
	require.NoError(t, err)

	status, err := client.LookupTransaction(context.Background(), "not base58!")
	require.NoError(t, err)
	assert.Equal(t, TxNotFound, status)
}

// stubRPC serves a fixed JSON-RPC response for every request.
func stubRPC(t *testing.T, result string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + result + `}`))
	}))
	t.Cleanup(srv.Close)

	client, err := Init(config.SolanaConfig{RPCURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestLookupTransaction_NilMeta(t *testing.T) {
	// getTransaction can return a transaction with a null meta; the
	// transfer's success is unknown then, so it must not read as
	// confirmed.
	client := stubRPC(t, `{"slot":123,"meta":null,"transaction":null}`)

	status, err := client.LookupTransaction(context.Background(), strings.Repeat("1", 64))
	require.NoError(t, err)
	assert.Equal(t, TxNotFound, status)
}

func TestLookupTransaction_FailedMeta(t *testing.T) {
	client := stubRPC(t, `{"slot":123,"meta":{"err":{"InstructionError":[0,"Custom"]}},"transaction":null}`)

	status, err := client.LookupTransaction(context.Background(), strings.Repeat("1", 64))
	require.NoError(t, err)
	assert.Equal(t, TxFailed, status)
}

func TestParseCommitment(t *testing.T) {
	assert.Equal(t, rpc.CommitmentProcessed, parseCommitment("processed"))
	assert.Equal(t, rpc.CommitmentConfirmed, parseCommitment("confirmed"))
	assert.Equal(t, rpc.CommitmentFinalized, parseCommitment("finalized"))
	assert.Equal(t, rpc.CommitmentConfirmed, parseCommitment(""))
}

func TestTxStatusString(t *testing.T) {
	assert.Equal(t, "confirmed", TxConfirmed.String())
	assert.Equal(t, "failed", TxFailed.String())
	assert.Equal(t, "not_found", TxNotFound.String())
}
