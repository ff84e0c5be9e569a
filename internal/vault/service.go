package vault

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Mohsinsiddi/yieldcli/internal/amount"
	"github.com/Mohsinsiddi/yieldcli/internal/chain"
	"github.com/Mohsinsiddi/yieldcli/internal/config"
	"github.com/Mohsinsiddi/yieldcli/internal/contract"
	"github.com/Mohsinsiddi/yieldcli/internal/query"
	"github.com/Mohsinsiddi/yieldcli/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Node is the chain surface the service needs.
type Node interface {
	contract.Backend
	WaitForReceipt(ctx context.Context, hash common.Hash, timeout, interval time.Duration) (*chain.TxReceipt, error)
}

// Options configures a Service.
type Options struct {
	Strategy common.Address
	Asset    common.Address
	Decimals int32             // asset decimals, used to scale the amount input
	ChainID  *big.Int          // required to submit
	Signer   contract.TxSigner // nil for watch-only accounts
	Policy   query.Policy
	CacheTTL time.Duration // 0 disables the read cache
	Logger   *zap.Logger
}

// Service performs the vault's reads, simulations and writes.
type Service struct {
	node      Node
	caller    *contract.Caller
	simulator *contract.Simulator
	sender    *contract.Sender
	opts      Options
	reads     *query.Cache[*big.Int]
	log       *zap.Logger
}

// NewService wires a Service over node. Both reads and both simulations use
// the strategy ABI; the asset is read through its balanceOf.
func NewService(node Node, opts Options) *Service {
	strategyABI := contract.MustBuiltinABI(contract.YieldStrategy)
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Policy == (query.Policy{}) {
		opts.Policy = query.DefaultPolicy
	}

	s := &Service{
		node:   node,
		caller: contract.NewCaller(node, strategyABI),
		simulator: contract.NewSimulator(node, strategyABI, map[string]uint64{
			Deposit.Method():  config.GasLimitVaultDeposit,
			Withdraw.Method(): config.GasLimitVaultWithdraw,
		}),
		opts: opts,
		log:  log.Named("vault"),
	}
	if opts.Signer != nil && opts.ChainID != nil {
		s.sender = contract.NewSender(node, opts.Signer, opts.ChainID)
	}
	if opts.CacheTTL > 0 {
		s.reads = query.NewCache[*big.Int](opts.CacheTTL)
	}
	return s
}

// CanSubmit reports whether the service holds a signer.
func (s *Service) CanSubmit() bool { return s.sender != nil }

// ReadShares reads the strategy share balance of account.
func (s *Service) ReadShares(ctx context.Context, account common.Address) (*big.Int, error) {
	return s.read(ctx, "shares", s.opts.Strategy, account)
}

// ReadStableBalance reads the asset balance of account.
func (s *Service) ReadStableBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	return s.read(ctx, "stable", s.opts.Asset, account)
}

// Invalidate drops cached reads so the next poll hits the node.
func (s *Service) Invalidate() {
	if s.reads != nil {
		s.reads.Invalidate()
	}
}

func (s *Service) read(ctx context.Context, kind string, token, account common.Address) (*big.Int, error) {
	fetch := func(ctx context.Context) (*big.Int, error) {
		return s.caller.BalanceOf(ctx, token, account)
	}

	var (
		v   *big.Int
		err error
	)
	if s.reads != nil {
		v, err = s.reads.Load(ctx, kind+":"+account.Hex(), s.opts.Policy, fetch)
	} else {
		v, err = query.Fetch(ctx, s.opts.Policy, fetch)
	}
	if err != nil {
		s.log.Warn("balance read failed", zap.String("kind", kind), zap.Stringer("account", account), zap.Error(err))
		return nil, err
	}
	s.log.Debug("balance read", zap.String("kind", kind), zap.Stringer("account", account), zap.Stringer("value", v))
	return v, nil
}

// Simulate dry-runs a for account with the amount as typed. An empty or
// unparseable amount yields no request; so does a revert, which is not
// retried.
func (s *Service) Simulate(ctx context.Context, a Action, account common.Address, input string) (*contract.Request, error) {
	assets, err := amount.ToBaseUnits(input, s.opts.Decimals)
	if err != nil {
		return nil, err
	}

	args := []any{assets, account}
	if a == Withdraw {
		args = append(args, account)
	}

	req, err := query.Fetch(ctx, s.opts.Policy, func(ctx context.Context) (*contract.Request, error) {
		r, err := s.simulator.Simulate(ctx, account, s.opts.Strategy, a.Method(), args...)
		if errors.Is(err, contract.ErrReverted) {
			return nil, query.Permanent(err)
		}
		return r, err
	})
	if err != nil {
		s.log.Info("simulation unavailable", zap.Stringer("action", a), zap.String("amount", input), zap.Error(err))
		return nil, err
	}
	s.log.Debug("simulation ok", zap.Stringer("action", a), zap.String("amount", input), zap.Uint64("gas", req.Gas))
	return req, nil
}

// SimulateDeposit simulates deposit(assets, account).
func (s *Service) SimulateDeposit(ctx context.Context, account common.Address, input string) (*contract.Request, error) {
	return s.Simulate(ctx, Deposit, account, input)
}

// SimulateWithdraw simulates withdraw(assets, account, account).
func (s *Service) SimulateWithdraw(ctx context.Context, account common.Address, input string) (*contract.Request, error) {
	return s.Simulate(ctx, Withdraw, account, input)
}

// Submit sends req exactly as simulated. It is never retried.
func (s *Service) Submit(ctx context.Context, req *contract.Request) (common.Hash, error) {
	if s.sender == nil {
		return common.Hash{}, fmt.Errorf("%w: cannot submit", wallet.ErrWatchOnly)
	}
	hash, err := s.sender.Send(ctx, req)
	if err != nil {
		s.log.Error("submit failed", zap.String("method", methodOf(req)), zap.Error(err))
		return common.Hash{}, err
	}
	s.log.Info("submitted", zap.String("method", req.Method), zap.Stringer("hash", hash))
	s.Invalidate()
	return hash, nil
}

// Wait blocks until hash is mined or config.TxConfirmTimeout passes.
func (s *Service) Wait(ctx context.Context, hash common.Hash) (*chain.TxReceipt, error) {
	r, err := s.node.WaitForReceipt(ctx, hash, config.TxConfirmTimeout, 2*time.Second)
	if err != nil {
		s.log.Warn("receipt wait failed", zap.Stringer("hash", hash), zap.Error(err))
		return r, err
	}
	s.log.Info("mined", zap.Stringer("hash", hash), zap.Uint64("block", r.BlockNumber), zap.Uint64("gas_used", r.GasUsed))
	return r, nil
}

func methodOf(req *contract.Request) string {
	if req == nil {
		return ""
	}
	return req.Method
}
