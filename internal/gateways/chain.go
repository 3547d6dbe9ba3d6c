package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/viniapp/viniapp-node/internal/log"
)

const (
	methodGetTransactionReceipt = "eth_getTransactionReceipt"
	methodGetTransactionByHash  = "eth_getTransactionByHash"

	// rpcNotFoundCode is answered by some nodes for unknown transactions
	rpcNotFoundCode = -32000
)

// ChainClient reads transactions from an Ethereum compatible JSON-RPC node.
// Every call is a single attempt bounded by the response timeout.
type ChainClient struct {
	rpc     *rpc.Client
	timeout time.Duration
}

// NewChainClient returns a client for the node at url
func NewChainClient(ctx context.Context, url string, timeout time.Duration) (*ChainClient, error) {
	client, err := rpc.DialOptions(ctx, url, rpc.WithHTTPClient(&http.Client{}))
	if err != nil {
		return nil, fmt.Errorf("dialing rpc node: %w", err)
	}
	return &ChainClient{rpc: client, timeout: timeout}, nil
}

// TransactionReceipt returns the raw receipt of hash or nil if the node does not know it
func (c *ChainClient) TransactionReceipt(ctx context.Context, hash string) (json.RawMessage, error) {
	return c.call(ctx, methodGetTransactionReceipt, hash, true)
}

// TransactionByHash returns the raw transaction of hash or nil if the node does not know it.
// Unlike receipts, a -32000 error object is reported as an error.
func (c *ChainClient) TransactionByHash(ctx context.Context, hash string) (json.RawMessage, error) {
	return c.call(ctx, methodGetTransactionByHash, hash, false)
}

// Close closes the underlying rpc client
func (c *ChainClient) Close() {
	c.rpc.Close()
}

func (c *ChainClient) call(ctx context.Context, method string, hash string, notFoundCode bool) (json.RawMessage, error) {
	_ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var raw json.RawMessage
	err := c.rpc.CallContext(_ctx, &raw, method, hash)
	if err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			if notFoundCode && rpcErr.ErrorCode() == rpcNotFoundCode {
				log.Debug(ctx, "rpc node reports unknown transaction", "method", method, "hash", hash, "err", err)
				return nil, nil
			}
			return nil, fmt.Errorf("RPC error: %s", rpcErr.Error())
		}
		if errors.Is(err, rpc.ErrNoResult) {
			return nil, nil
		}
		var httpErr rpc.HTTPError
		if errors.As(err, &httpErr) {
			return nil, fmt.Errorf("RPC request failed: %s", string(httpErr.Body))
		}
		return nil, err
	}

	if isNull(raw) {
		return nil, nil
	}
	return raw, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
