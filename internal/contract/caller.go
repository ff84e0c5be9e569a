package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ErrUnknownMethod is returned when the ABI has no function by that name.
var ErrUnknownMethod = errors.New("function not found in ABI")

// Caller calls read-only (view/pure) contract functions.
type Caller struct {
	backend Backend
	abi     abi.ABI
}

// NewCaller creates a Caller for contracts described by a.
func NewCaller(backend Backend, a abi.ABI) *Caller {
	return &Caller{backend: backend, abi: a}
}

// Call runs method on the contract at to and returns the decoded outputs.
func (c *Caller) Call(ctx context.Context, to common.Address, method string, args ...any) ([]any, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if !m.IsConstant() {
		return nil, fmt.Errorf("function %q is not a read function (stateMutability: %s)", method, m.StateMutability)
	}

	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding call: %w", err)
	}

	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("contract call failed: %w", err)
	}

	decoded, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}
	return decoded, nil
}

// BalanceOf reads balanceOf(owner) on token. The strategy share balance and
// the stable-token balance are both read this way.
func (c *Caller) BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	out, err := c.Call(ctx, token, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("balanceOf returned %d values", len(out))
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("balanceOf returned %T", out[0])
	}
	return v, nil
}
