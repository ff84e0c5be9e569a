// Package rpc chooses which configured JSON-RPC endpoint the client talks to.
package rpc

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Mohsinsiddi/yieldcli/internal/chain"
	"golang.org/x/sync/errgroup"
)

// ErrNoHealthyRPC is returned when no healthy RPC endpoint is available.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm defines how an RPC endpoint is selected.
type Algorithm string

const (
	AlgorithmFastest    Algorithm = "fastest"
	AlgorithmRoundRobin Algorithm = "round-robin"
	AlgorithmFailover   Algorithm = "failover"

	// Discard nodes more than this many blocks behind the best.
	staleBlockThreshold = 3
	pingTimeout         = 5 * time.Second
)

// Endpoint is one probed RPC URL.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Err         error
}

// Healthy reports whether the probe succeeded.
func (e Endpoint) Healthy() bool { return e.Err == nil }

// Probe pings every URL in parallel. Results keep the input order.
func Probe(ctx context.Context, urls []string) []Endpoint {
	out := make([]Endpoint, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(gctx, pingTimeout)
			defer cancel()
			latency, block, err := chain.NewEVMClient(u).Ping(pctx)
			out[i] = Endpoint{URL: u, Latency: latency, BlockNumber: block, Err: err}
			return nil // a dead endpoint must not cancel the others
		})
	}
	_ = g.Wait()
	return out
}

// Pick chooses among probed endpoints.
//
// fastest: lowest latency among healthy nodes not stale by more than
// staleBlockThreshold blocks. failover: first healthy in list order.
// round-robin: healthy node at position turn modulo the healthy count.
func Pick(endpoints []Endpoint, algo Algorithm, turn int) (Endpoint, error) {
	var healthy []Endpoint
	var best uint64
	for _, e := range endpoints {
		if !e.Healthy() {
			continue
		}
		healthy = append(healthy, e)
		if e.BlockNumber > best {
			best = e.BlockNumber
		}
	}
	if len(healthy) == 0 {
		return Endpoint{}, ErrNoHealthyRPC
	}

	switch algo {
	case AlgorithmFailover:
		return healthy[0], nil
	case AlgorithmRoundRobin:
		if turn < 0 {
			turn = -turn
		}
		return healthy[turn%len(healthy)], nil
	default:
		fresh := healthy[:0:0]
		for _, e := range healthy {
			if best-e.BlockNumber <= staleBlockThreshold {
				fresh = append(fresh, e)
			}
		}
		sort.SliceStable(fresh, func(i, j int) bool { return fresh[i].Latency < fresh[j].Latency })
		return fresh[0], nil
	}
}

// Select probes urls and returns the chosen URL. A single URL is returned
// without probing.
func Select(ctx context.Context, urls []string, algo Algorithm) (string, error) {
	switch len(urls) {
	case 0:
		return "", ErrNoHealthyRPC
	case 1:
		return urls[0], nil
	}
	if algo == "" {
		algo = AlgorithmFastest
	}
	winner, err := Pick(Probe(ctx, urls), algo, int(time.Now().Unix()))
	if err != nil {
		return "", err
	}
	return winner.URL, nil
}
