package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/yieldcli/internal/chain"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ErrReverted is returned when a simulated call would revert.
var ErrReverted = errors.New("simulation reverted")

// Request is a fully-resolved write call produced by a successful
// simulation. Submitting it sends exactly these fields.
type Request struct {
	From   common.Address
	To     common.Address
	Method string
	Args   []any
	Data   []byte
	Value  *big.Int
	Gas    uint64
	Return []byte // raw output of the simulated call
}

// CallMsg converts the request back into a node call.
func (r *Request) CallMsg() ethereum.CallMsg {
	to := r.To
	return ethereum.CallMsg{From: r.From, To: &to, Data: r.Data, Value: r.Value, Gas: r.Gas}
}

// Simulator dry-runs write calls against the node.
type Simulator struct {
	backend Backend
	abi     abi.ABI
	gas     map[string]uint64
}

// NewSimulator creates a Simulator. fallbackGas maps a method name to the
// gas limit used when the node cannot estimate.
func NewSimulator(backend Backend, a abi.ABI, fallbackGas map[string]uint64) *Simulator {
	return &Simulator{backend: backend, abi: a, gas: fallbackGas}
}

// Simulate runs method as from via eth_call, then estimates gas. A revert is
// reported as ErrReverted; any other failure is returned as-is.
func (s *Simulator) Simulate(ctx context.Context, from, to common.Address, method string, args ...any) (*Request, error) {
	if _, ok := s.abi.Methods[method]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	data, err := s.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding call: %w", err)
	}

	req := &Request{
		From:   from,
		To:     to,
		Method: method,
		Args:   args,
		Data:   data,
		Value:  new(big.Int),
	}

	ret, err := s.backend.CallContract(ctx, req.CallMsg(), nil)
	if err != nil {
		return nil, wrapRevert(method, err)
	}
	req.Return = ret

	gas, err := s.backend.EstimateGas(ctx, req.CallMsg())
	switch {
	case err == nil:
		req.Gas = gas
	case errors.Is(err, chain.ErrExecutionReverted):
		return nil, wrapRevert(method, err)
	default:
		fallback, ok := s.gas[method]
		if !ok {
			return nil, fmt.Errorf("estimating gas: %w", err)
		}
		req.Gas = fallback
	}
	return req, nil
}

func wrapRevert(method string, err error) error {
	if errors.Is(err, chain.ErrExecutionReverted) {
		return fmt.Errorf("%w: %s: %w", ErrReverted, method, err)
	}
	return fmt.Errorf("simulating %s: %w", method, err)
}
