package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrExecutionReverted is returned by CallContract and EstimateGas when the
// node reports that the call would revert.
var ErrExecutionReverted = errors.New("execution reverted")

// EVMClient is a minimal JSON-RPC client for EVM chains. Its method set
// matches the subset of ethclient the contract layer needs.
type EVMClient struct {
	url    string
	client *http.Client
	nextID atomic.Int64
}

// TxReceipt holds the on-chain receipt of a mined transaction.
type TxReceipt struct {
	Hash        common.Hash
	Status      uint64 // 1 = success, 0 = reverted
	BlockNumber uint64
	GasUsed     uint64
}

// RPCError is a JSON-RPC error object.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// NewEVMClient creates a new EVM JSON-RPC client pointed at url.
func NewEVMClient(url string) *EVMClient {
	return &EVMClient{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// URL returns the endpoint this client talks to.
func (c *EVMClient) URL() string { return c.url }

// ChainID returns the chain's ID.
func (c *EVMClient) ChainID(ctx context.Context) (*big.Int, error) {
	var hex hexutil.Big
	if err := c.call(ctx, &hex, "eth_chainId"); err != nil {
		return nil, err
	}
	return hex.ToInt(), nil
}

// BlockNumber returns the latest block number.
func (c *EVMClient) BlockNumber(ctx context.Context) (uint64, error) {
	var n hexutil.Uint64
	if err := c.call(ctx, &n, "eth_blockNumber"); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// CallContract executes msg with eth_call. blockNumber nil means "latest".
// A revert is reported as an error wrapping ErrExecutionReverted.
func (c *EVMClient) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	var out hexutil.Bytes
	if err := c.call(ctx, &out, "eth_call", toCallArg(msg), blockTag(blockNumber)); err != nil {
		return nil, classifyRevert(err)
	}
	return out, nil
}

// EstimateGas estimates gas for msg.
func (c *EVMClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	var n hexutil.Uint64
	if err := c.call(ctx, &n, "eth_estimateGas", toCallArg(msg)); err != nil {
		return 0, classifyRevert(err)
	}
	return uint64(n), nil
}

// SuggestGasPrice returns the node's legacy gas price.
func (c *EVMClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	var hex hexutil.Big
	if err := c.call(ctx, &hex, "eth_gasPrice"); err != nil {
		return nil, err
	}
	return hex.ToInt(), nil
}

// SuggestGasTipCap returns the node's EIP-1559 priority fee suggestion.
func (c *EVMClient) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	var hex hexutil.Big
	if err := c.call(ctx, &hex, "eth_maxPriorityFeePerGas"); err != nil {
		return nil, err
	}
	return hex.ToInt(), nil
}

// PendingNonceAt returns the next nonce including queued transactions.
func (c *EVMClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	var n hexutil.Uint64
	if err := c.call(ctx, &n, "eth_getTransactionCount", account, "pending"); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// SendTransaction broadcasts a signed transaction.
func (c *EVMClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encoding transaction: %w", err)
	}
	var hash common.Hash
	return c.call(ctx, &hash, "eth_sendRawTransaction", hexutil.Encode(raw))
}

// TransactionReceipt fetches the receipt for hash.
// Returns nil, nil if the transaction is still pending.
func (c *EVMClient) TransactionReceipt(ctx context.Context, hash common.Hash) (*TxReceipt, error) {
	var r *struct {
		Status      hexutil.Uint64 `json:"status"`
		BlockNumber hexutil.Uint64 `json:"blockNumber"`
		GasUsed     hexutil.Uint64 `json:"gasUsed"`
	}
	if err := c.call(ctx, &r, "eth_getTransactionReceipt", hash); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil // still pending
	}
	return &TxReceipt{
		Hash:        hash,
		Status:      uint64(r.Status),
		BlockNumber: uint64(r.BlockNumber),
		GasUsed:     uint64(r.GasUsed),
	}, nil
}

// WaitForReceipt polls every interval until the transaction is mined, the
// context ends, or timeout expires. A reverted receipt is returned together
// with an error.
func (c *EVMClient) WaitForReceipt(ctx context.Context, hash common.Hash, timeout, interval time.Duration) (*TxReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		receipt, err := c.TransactionReceipt(ctx, hash)
		if err != nil && ctx.Err() == nil {
			return nil, err
		}
		if receipt != nil {
			if receipt.Status == 0 {
				return receipt, fmt.Errorf("transaction reverted (hash: %s)", hash.Hex())
			}
			return receipt, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transaction %s not mined within %s", hash.Hex(), timeout)
		case <-ticker.C:
		}
	}
}

// Ping tests the RPC endpoint and returns latency + block number.
func (c *EVMClient) Ping(ctx context.Context) (latency time.Duration, blockNum uint64, err error) {
	start := time.Now()
	blockNum, err = c.BlockNumber(ctx)
	return time.Since(start), blockNum, err
}

// --- internal JSON-RPC plumbing ---

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int64         `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

func (c *EVMClient) call(ctx context.Context, out interface{}, method string, params ...interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if len(rpcResp.Result) == 0 {
		return fmt.Errorf("empty result for %s", method)
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("parsing result: %w", err)
	}
	return nil
}

func toCallArg(msg ethereum.CallMsg) map[string]interface{} {
	arg := map[string]interface{}{
		"from": msg.From,
	}
	if msg.To != nil {
		arg["to"] = msg.To
	}
	if len(msg.Data) > 0 {
		arg["data"] = hexutil.Bytes(msg.Data)
	}
	if msg.Value != nil && msg.Value.Sign() > 0 {
		arg["value"] = (*hexutil.Big)(msg.Value)
	}
	if msg.Gas != 0 {
		arg["gas"] = hexutil.Uint64(msg.Gas)
	}
	return arg
}

func blockTag(n *big.Int) string {
	if n == nil {
		return "latest"
	}
	return hexutil.EncodeBig(n)
}

// classifyRevert wraps node errors that mean "the call would revert".
func classifyRevert(err error) error {
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		return err
	}
	msg := rpcErr.Message
	if rpcErr.Code == 3 || strings.Contains(msg, "revert") || strings.Contains(msg, "execution") {
		return fmt.Errorf("%w: %s", ErrExecutionReverted, extractRevertReason(msg))
	}
	return err
}

// extractRevertReason tries to pull the revert reason out of an RPC error message.
func extractRevertReason(errMsg string) string {
	if idx := strings.Index(errMsg, "execution reverted:"); idx >= 0 {
		return strings.TrimSpace(errMsg[idx+len("execution reverted:"):])
	}
	if idx := strings.Index(errMsg, "revert"); idx >= 0 {
		return strings.TrimSpace(errMsg[idx:])
	}
	return errMsg
}
