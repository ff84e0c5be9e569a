package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrSignerMismatch is returned when a request was simulated for a different
// account than the one signing it.
var ErrSignerMismatch = errors.New("request sender does not match signer")

// Sender signs and broadcasts simulated requests.
type Sender struct {
	backend Backend
	signer  TxSigner
	chainID *big.Int
}

// NewSender creates a Sender.
func NewSender(backend Backend, signer TxSigner, chainID *big.Int) *Sender {
	return &Sender{backend: backend, signer: signer, chainID: chainID}
}

// Send submits req as an EIP-1559 transaction and returns its hash.
// The calldata, target, value and gas limit come from req unchanged.
func (s *Sender) Send(ctx context.Context, req *Request) (common.Hash, error) {
	if req == nil {
		return common.Hash{}, errors.New("no simulated request to send")
	}
	if req.From != s.signer.Address() {
		return common.Hash{}, fmt.Errorf("%w: %s vs %s", ErrSignerMismatch, req.From.Hex(), s.signer.Address().Hex())
	}

	gasPrice, err := s.backend.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("getting gas price: %w", err)
	}
	tip, err := s.backend.SuggestGasTipCap(ctx)
	if err != nil {
		// Nodes without eth_maxPriorityFeePerGas: treat the legacy price as the tip.
		tip = gasPrice
	}

	nonce, err := s.backend.PendingNonceAt(ctx, req.From)
	if err != nil {
		return common.Hash{}, fmt.Errorf("getting nonce: %w", err)
	}

	to := req.To
	value := req.Value
	if value == nil {
		value = new(big.Int)
	}
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap(gasPrice, tip),
		Gas:       req.Gas,
		To:        &to,
		Value:     value,
		Data:      req.Data,
	})

	signed, err := s.signer.SignTx(tx, s.chainID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("signing transaction: %w", err)
	}

	if err := s.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("broadcasting transaction: %w", err)
	}
	return signed.Hash(), nil
}

// feeCap leaves room for the base fee to double before the tx is priced out.
func feeCap(gasPrice, tip *big.Int) *big.Int {
	c := new(big.Int).Mul(gasPrice, big.NewInt(2))
	if c.Cmp(tip) < 0 {
		c.Set(tip)
	}
	return c
}
