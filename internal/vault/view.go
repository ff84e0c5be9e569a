// Package vault binds the connected account to the strategy vault: it
// mirrors balance reads into the store and keeps the last successful
// deposit/withdraw simulation for submission.
package vault

import (
	"math/big"
	"strconv"
	"sync"

	"github.com/Mohsinsiddi/yieldcli/internal/amount"
	"github.com/Mohsinsiddi/yieldcli/internal/contract"
	"github.com/Mohsinsiddi/yieldcli/internal/query"
	"github.com/Mohsinsiddi/yieldcli/internal/store"
	"github.com/ethereum/go-ethereum/common"
)

// Action is one of the two vault writes.
type Action int

const (
	Deposit Action = iota
	Withdraw
)

// Actions lists every action in display order.
var Actions = []Action{Deposit, Withdraw}

func (a Action) String() string {
	switch a {
	case Deposit:
		return "Deposit"
	case Withdraw:
		return "Withdraw"
	}
	return "Action(" + strconv.Itoa(int(a)) + ")"
}

// Method is the strategy function the action calls.
func (a Action) Method() string {
	if a == Withdraw {
		return "withdraw"
	}
	return "deposit"
}

type slot struct {
	amount string // input the request was simulated for
	req    *contract.Request
}

// View is the state behind the vault screen. It performs no I/O; results
// arrive through the Apply/Set methods tagged with the generation they were
// issued under, and stale ones are dropped.
type View struct {
	mu        sync.Mutex
	store     *store.Store
	account   common.Address
	connected bool
	amount    string
	slots     [2]slot
	gen       query.Generation
}

// NewView creates a view over s.
func NewView(s *store.Store) *View {
	return &View{store: s}
}

// Store returns the balance store the view writes to.
func (v *View) Store() *store.Store { return v.store }

// Account returns the connected account.
func (v *View) Account() (common.Address, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.account, v.connected
}

// Generation returns the live generation.
func (v *View) Generation() uint64 { return v.gen.Current() }

// SetAccount connects addr. When the account changes both simulation slots
// are cleared and a new generation starts; the store keeps its values until
// the new reads land.
func (v *View) SetAccount(addr common.Address) (gen uint64, changed bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.connected && v.account == addr {
		return v.gen.Current(), false
	}
	v.account = addr
	v.connected = true
	v.slots = [2]slot{}
	return v.gen.Next(), true
}

// Disconnect drops the account and both simulations.
func (v *View) Disconnect() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.connected = false
	v.account = common.Address{}
	v.slots = [2]slot{}
	return v.gen.Next()
}

// ApplyShares copies a share read into the store. A nil read or a stale
// generation is ignored. Reports whether the store changed.
func (v *View) ApplyShares(gen uint64, val *big.Int) bool {
	if val == nil || !v.gen.IsCurrent(gen) {
		return false
	}
	v.store.SetShares(ToNumber(val))
	return true
}

// ApplyStableBalance copies a stable-token read into the store, with the
// same rules as ApplyShares.
func (v *View) ApplyStableBalance(gen uint64, val *big.Int) bool {
	if val == nil || !v.gen.IsCurrent(gen) {
		return false
	}
	v.store.SetStableBalance(ToNumber(val))
	return true
}

// Amount returns the current amount input.
func (v *View) Amount() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.amount
}

// SetAmount applies the keystroke filter and returns the resulting input.
// A rejected keystroke leaves the previous value. An accepted change clears
// both slots so a button never submits an amount that is no longer shown.
func (v *View) SetAmount(input string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	next := amount.Filter(v.amount, input)
	if next != v.amount {
		v.amount = next
		v.slots = [2]slot{}
	}
	return v.amount
}

// SetSimulation replaces the slot for a with req (nil = unusable). The
// result is dropped when it belongs to an old generation or was simulated
// for an amount that is no longer entered.
func (v *View) SetSimulation(gen uint64, a Action, forAmount string, req *contract.Request) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.gen.IsCurrent(gen) || forAmount != v.amount || !validAction(a) {
		return false
	}
	v.slots[a] = slot{amount: forAmount, req: req}
	return true
}

// Enabled reports whether a holds a usable request. Balances play no part.
func (v *View) Enabled(a Action) bool {
	return v.Request(a) != nil
}

// Request returns the exact descriptor to submit for a, or nil.
func (v *View) Request(a Action) *contract.Request {
	if !validAction(a) {
		return nil
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.slots[a].req
}

func validAction(a Action) bool {
	return a == Deposit || a == Withdraw
}

// ToNumber converts an on-chain integer to the store's float64. Integers
// beyond 2^53 lose precision.
func ToNumber(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}

// FormatNumber renders a store value verbatim: 1000000 stays "1000000".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
