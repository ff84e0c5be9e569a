package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/yieldcli/internal/amount"
	"github.com/Mohsinsiddi/yieldcli/internal/chain"
	"github.com/Mohsinsiddi/yieldcli/internal/config"
	"github.com/Mohsinsiddi/yieldcli/internal/contract"
	"github.com/Mohsinsiddi/yieldcli/internal/query"
	"github.com/Mohsinsiddi/yieldcli/internal/rpc"
	"github.com/Mohsinsiddi/yieldcli/internal/ui"
	"github.com/Mohsinsiddi/yieldcli/internal/vault"
	"github.com/Mohsinsiddi/yieldcli/internal/wallet"
)

// session bundles what every vault command needs: the connected wallet,
// the node it talks to and the service on top.
type session struct {
	wallet  *wallet.Wallet
	manager *wallet.Manager
	chain   *chain.Chain
	node    *chain.EVMClient
	chainID *big.Int
	svc     *vault.Service
}

// newWalletManager creates a Manager backed by the config-dir JSON store.
func newWalletManager() *wallet.Manager {
	return wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(cfg.WalletsPath())))
}

// connectWallet resolves --wallet, then the configured default wallet, then
// the manager's own default.
func connectWallet(mgr *wallet.Manager) (*wallet.Wallet, error) {
	name := walletFlag
	if name == "" {
		name = cfg.DefaultWallet
	}
	w, err := mgr.Connect(name)
	if errors.Is(err, wallet.ErrWalletNotFound) {
		return nil, fmt.Errorf("%w\n  Run `yieldcli wallet list` or set a default with `yieldcli wallet use <name>`", err)
	}
	if errors.Is(err, wallet.ErrNoWallet) {
		return nil, fmt.Errorf("%w\n  Add one with: yieldcli wallet add <name> <address>  (or --key for signing)", err)
	}
	return w, err
}

// rpcCandidates lists custom RPCs first, then the built-in ones for mode.
func rpcCandidates(c *chain.Chain, custom []string, mode string) []string {
	out := make([]string, 0, len(custom)+len(c.RPCs(mode)))
	seen := make(map[string]bool)
	for _, u := range append(append([]string{}, custom...), c.RPCs(mode)...) {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// dialNode picks an RPC endpoint for the configured network.
func dialNode(ctx context.Context) (*chain.Chain, *chain.EVMClient, error) {
	c, err := chain.NewRegistry().GetByName(cfg.DefaultNetwork)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q\n  Fix with: yieldcli config set default_network <chain>", err, cfg.DefaultNetwork)
	}

	sctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
	defer cancel()
	url, err := rpc.Select(sctx, rpcCandidates(c, cfg.GetRPCs(c.Name), cfg.NetworkMode), rpc.Algorithm(cfg.RPCAlgorithm))
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w\n  Add one with: yieldcli config rpc-add %s <url>", c.DisplayName, cfg.NetworkMode, err, c.Name)
	}
	logger.Info("rpc selected", zap.String("chain", c.Name), zap.String("url", url), zap.String("algorithm", cfg.RPCAlgorithm))
	return c, chain.NewEVMClient(url), nil
}

// openSession connects the wallet, dials the node and wires the vault
// service. cacheTTL 0 disables the read cache.
func openSession(ctx context.Context, cacheTTL time.Duration) (*session, error) {
	mgr := newWalletManager()
	w, err := connectWallet(mgr)
	if err != nil {
		return nil, err
	}
	c, node, err := dialNode(ctx)
	if err != nil {
		return nil, err
	}

	chainID, err := query.Fetch(ctx, query.DefaultPolicy, node.ChainID)
	if err != nil {
		return nil, fmt.Errorf("reading chain id: %w", err)
	}

	opts := vault.Options{
		Strategy: common.HexToAddress(cfg.StrategyAddress),
		Asset:    common.HexToAddress(cfg.AssetAddress),
		Decimals: cfg.AssetDecimals,
		ChainID:  chainID,
		CacheTTL: cacheTTL,
		Logger:   logger,
	}
	if w.CanSign() {
		opts.Signer = wallet.NewSigner(w, mgr.Keystore())
	}

	return &session{
		wallet:  w,
		manager: mgr,
		chain:   c,
		node:    node,
		chainID: chainID,
		svc:     vault.NewService(node, opts),
	}, nil
}

// explorerTxURL links hash on the chain's explorer, or "" when unknown.
func explorerTxURL(c *chain.Chain, mode string, hash common.Hash) string {
	base := c.MainnetExplorer
	if mode == "testnet" {
		base = c.TestnetExplorer
	}
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/tx/" + hash.Hex()
}

// requestPairs renders a simulated request for confirmation.
func requestPairs(req *contract.Request, input, symbol string, gasPrice *big.Int, native string) [][2]string {
	pairs := [][2]string{
		{"Method", req.Method},
		{"Amount", input + " " + symbol},
		{"From", req.From.Hex()},
		{"To", req.To.Hex()},
		{"Calldata", fmt.Sprintf("0x%x…", req.Data[:min(len(req.Data), 4)])},
		{"Gas limit", fmt.Sprintf("%d", req.Gas)},
	}
	if gasPrice != nil {
		fee := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(req.Gas))
		pairs = append(pairs, [2]string{"Max network fee", amount.FormatUnits(fee, 18) + " " + native})
	}
	return pairs
}

// errLine formats a command error for stderr.
func errLine(err error) string {
	msg := err.Error()
	head, rest, found := strings.Cut(msg, "\n")
	if !found {
		return ui.Err(msg)
	}
	return ui.Err(head) + "\n" + ui.Meta(rest)
}
