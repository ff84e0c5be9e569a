package screen

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/yieldcli/internal/config"
	"github.com/Mohsinsiddi/yieldcli/internal/contract"
	"github.com/Mohsinsiddi/yieldcli/internal/store"
	"github.com/Mohsinsiddi/yieldcli/internal/ui"
	"github.com/Mohsinsiddi/yieldcli/internal/ui/router"
	"github.com/Mohsinsiddi/yieldcli/internal/vault"
	"github.com/Mohsinsiddi/yieldcli/internal/wallet"
)

// VaultService is the I/O behind the vault screen.
type VaultService interface {
	ReadShares(ctx context.Context, account common.Address) (*big.Int, error)
	ReadStableBalance(ctx context.Context, account common.Address) (*big.Int, error)
	Simulate(ctx context.Context, a vault.Action, account common.Address, input string) (*contract.Request, error)
	Submit(ctx context.Context, req *contract.Request) (common.Hash, error)
	CanSubmit() bool
	Invalidate()
}

// ConnectMsg connects the vault screen to an account. Sending it again with
// another address switches accounts.
type ConnectMsg struct {
	Wallet  string
	Account common.Address
}

type (
	pollTickMsg time.Time

	sharesMsg struct {
		gen   uint64
		value *big.Int
	}

	stableMsg struct {
		gen   uint64
		value *big.Int
	}

	simMsg struct {
		gen    uint64
		action vault.Action
		amount string
		req    *contract.Request
	}

	submittedMsg struct {
		action vault.Action
		hash   common.Hash
		err    error
	}
)

// Focus targets, in tab order.
const (
	focusInput = iota
	focusDeposit
	focusWithdraw
	focusCount
)

// VaultOptions configures the vault screen.
type VaultOptions struct {
	View     *vault.View
	Service  VaultService
	Wallet   string
	Account  common.Address
	Symbol   string        // stable token label, "USDC" by default
	Interval time.Duration // balance re-poll interval
	Logger   *zap.Logger
}

// Vault is the feature screen: balances, amount input and the two actions.
type Vault struct {
	view     *vault.View
	svc      VaultService
	log      *zap.Logger
	keys     vaultKeys
	help     help.Model
	input    textinput.Model
	spin     spinner.Model
	symbol   string
	interval time.Duration

	wallet     string
	initial    ConnectMsg
	focus      int
	reading    int
	simulating [2]bool
	submitting bool
	flash      string
	flashErr   bool
	lastUpdate time.Time

	parent   context.Context
	ctx      context.Context
	cancel   context.CancelFunc
	unsubscr func()

	width, height int
}

// NewVault builds the vault screen. The screen connects opts.Account on
// Init; a zero account leaves it disconnected.
func NewVault(ctx context.Context, opts VaultOptions) *Vault {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.View == nil {
		opts.View = vault.NewView(store.New())
	}
	if opts.Symbol == "" {
		opts.Symbol = "USDC"
	}
	if opts.Interval <= 0 {
		opts.Interval = 12 * time.Second
	}

	in := textinput.New()
	in.Placeholder = "0.00"
	in.Prompt = "Amount › "
	in.CharLimit = 40
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = ui.StyleChain

	m := &Vault{
		view:     opts.View,
		svc:      opts.Service,
		log:      log.Named("tui"),
		keys:     defaultVaultKeys,
		help:     help.New(),
		input:    in,
		spin:     sp,
		symbol:   opts.Symbol,
		interval: opts.Interval,
		parent:   ctx,
	}
	if opts.Account != (common.Address{}) {
		m.initial = ConnectMsg{Wallet: opts.Wallet, Account: opts.Account}
	}
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.unsubscr = m.view.Store().Subscribe(func(b store.Balances) {
		m.log.Debug("balances updated", zap.Float64("shares", b.Shares), zap.Float64("stable", b.StableBalance))
	})
	return m
}

// Close cancels in-flight queries and detaches from the store.
func (m *Vault) Close() {
	m.cancel()
	if m.unsubscr != nil {
		m.unsubscr()
		m.unsubscr = nil
	}
}

func (m *Vault) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spin.Tick, pollTick(m.interval)}
	if m.initial.Account != (common.Address{}) {
		connect := m.initial
		cmds = append(cmds, func() tea.Msg { return connect })
	}
	return tea.Batch(cmds...)
}

func (m *Vault) SetSize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
}

func (m *Vault) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ConnectMsg:
		return m, m.connect(msg)

	case pollTickMsg:
		return m, tea.Batch(m.refresh(), pollTick(m.interval))

	case sharesMsg:
		m.doneReading(msg.gen)
		if m.view.ApplyShares(msg.gen, msg.value) {
			m.lastUpdate = time.Now()
		}
		return m, nil

	case stableMsg:
		m.doneReading(msg.gen)
		if m.view.ApplyStableBalance(msg.gen, msg.value) {
			m.lastUpdate = time.Now()
		}
		return m, nil

	case simMsg:
		if msg.gen == m.view.Generation() && msg.amount == m.view.Amount() {
			m.simulating[msg.action] = false
		}
		m.view.SetSimulation(msg.gen, msg.action, msg.amount, msg.req)
		return m, nil

	case submittedMsg:
		m.submitting = false
		if msg.err != nil {
			m.setFlash(fmt.Sprintf("%s failed: %s", msg.action, ui.TrimErr(msg.err)), true)
			return m, nil
		}
		m.setFlash(fmt.Sprintf("%s submitted: %s", msg.action, ui.TruncateAddr(msg.hash.Hex())), false)
		return m, m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Vault) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Deposit):
		return m, m.submit(vault.Deposit)
	case key.Matches(msg, m.keys.Withdraw):
		return m, m.submit(vault.Withdraw)
	case key.Matches(msg, m.keys.Refresh):
		if m.svc != nil {
			m.svc.Invalidate()
		}
		return m, m.refresh()
	case key.Matches(msg, m.keys.Focus):
		step := 1
		if msg.String() == "shift+tab" {
			step = focusCount - 1
		}
		m.setFocus((m.focus + step) % focusCount)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		switch m.focus {
		case focusDeposit:
			return m, m.submit(vault.Deposit)
		case focusWithdraw:
			return m, m.submit(vault.Withdraw)
		}
		return m, nil
	}

	if m.focus != focusInput {
		return m, nil
	}
	prev := m.view.Amount()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if typed := m.input.Value(); typed != prev {
		accepted := m.view.SetAmount(typed)
		if accepted != typed {
			m.input.SetValue(accepted)
		}
		if accepted != prev {
			return m, tea.Batch(cmd, m.simulateAll())
		}
	}
	return m, cmd
}

func (m *Vault) setFocus(f int) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Vault) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
}

// connect switches the screen to msg.Account. Queries still running for the
// previous account are cancelled and their results dropped.
func (m *Vault) connect(msg ConnectMsg) tea.Cmd {
	_, changed := m.view.SetAccount(msg.Account)
	m.wallet = msg.Wallet
	if !changed {
		return nil
	}
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(m.parent)
	m.simulating = [2]bool{}
	m.reading = 0
	m.flash = ""
	m.log.Info("account connected", zap.String("wallet", msg.Wallet), zap.Stringer("account", msg.Account))
	return m.refresh()
}

// refresh re-reads both balances and re-simulates both actions for the
// amount currently entered.
func (m *Vault) refresh() tea.Cmd {
	account, ok := m.view.Account()
	if !ok || m.svc == nil {
		return nil
	}
	gen := m.view.Generation()
	ctx := m.ctx
	m.reading += 2
	return tea.Batch(
		func() tea.Msg {
			qctx, cancel := context.WithTimeout(ctx, config.QueryTimeout)
			defer cancel()
			v, _ := m.svc.ReadShares(qctx, account)
			return sharesMsg{gen: gen, value: v}
		},
		func() tea.Msg {
			qctx, cancel := context.WithTimeout(ctx, config.QueryTimeout)
			defer cancel()
			v, _ := m.svc.ReadStableBalance(qctx, account)
			return stableMsg{gen: gen, value: v}
		},
		m.simulateAll(),
	)
}

func (m *Vault) simulateAll() tea.Cmd {
	account, ok := m.view.Account()
	input := m.view.Amount()
	if !ok || m.svc == nil || strings.Trim(input, ".") == "" {
		m.simulating = [2]bool{}
		return nil
	}
	gen := m.view.Generation()
	ctx := m.ctx
	cmds := make([]tea.Cmd, 0, len(vault.Actions))
	for _, a := range vault.Actions {
		m.simulating[a] = true
		cmds = append(cmds, func() tea.Msg {
			qctx, cancel := context.WithTimeout(ctx, config.QueryTimeout)
			defer cancel()
			req, _ := m.svc.Simulate(qctx, a, account, input)
			return simMsg{gen: gen, action: a, amount: input, req: req}
		})
	}
	return tea.Batch(cmds...)
}

// submit sends the last successful simulation for a. A disabled action
// does nothing.
func (m *Vault) submit(a vault.Action) tea.Cmd {
	req := m.view.Request(a)
	if req == nil || m.submitting {
		return nil
	}
	if !m.canSubmit() {
		m.setFlash(fmt.Sprintf("%s unavailable: %s", a, wallet.ErrWatchOnly), true)
		return nil
	}
	m.submitting = true
	m.flash = ""
	ctx := m.ctx
	return func() tea.Msg {
		hash, err := m.svc.Submit(ctx, req)
		if errors.Is(err, context.Canceled) {
			err = errors.New("cancelled")
		}
		return submittedMsg{action: a, hash: hash, err: err}
	}
}

func (m *Vault) doneReading(gen uint64) {
	if gen == m.view.Generation() && m.reading > 0 {
		m.reading--
	}
}

func (m *Vault) canSubmit() bool {
	return m.svc != nil && m.svc.CanSubmit()
}

func pollTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return pollTickMsg(t) })
}

func (m *Vault) busy() bool {
	return m.submitting || m.reading > 0 || m.simulating[0] || m.simulating[1]
}

func (m *Vault) View() string {
	var sb strings.Builder
	sb.WriteString(ui.StyleTitle.Render("Yield Donating Strategy") + "\n")

	account, connected := m.view.Account()
	if !connected {
		sb.WriteString(ui.Warn("No wallet connected") + "\n")
		sb.WriteString(ui.Hint("yieldcli wallet add <name> --key, then reopen the vault") + "\n")
		return sb.String()
	}

	line := "Account: " + ui.Addr(account.Hex())
	if m.wallet != "" {
		line += " " + ui.Meta("("+m.wallet+")")
	}
	if !m.canSubmit() {
		line += " " + ui.StyleWarning.Render("[watch-only]")
	}
	sb.WriteString(line + "\n\n")

	b := m.view.Store().Balances()
	sb.WriteString("Current Shares: " + ui.Val(vault.FormatNumber(b.Shares)) + "\n")
	sb.WriteString(m.symbol + " Balance: " + ui.Val(vault.FormatNumber(b.StableBalance)) + "\n\n")

	sb.WriteString(m.input.View() + "\n\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		ui.Button("Deposit", m.view.Enabled(vault.Deposit), m.focus == focusDeposit), "  ",
		ui.Button("Withdraw", m.view.Enabled(vault.Withdraw), m.focus == focusWithdraw),
	) + "\n")

	status := ""
	if m.busy() {
		status = m.spin.View() + " "
		if m.submitting {
			status += "submitting…"
		} else {
			status += "loading…"
		}
	} else if !m.lastUpdate.IsZero() {
		status = ui.Meta("updated " + m.lastUpdate.Format("15:04:05"))
	}
	sb.WriteString(status + "\n")

	if m.flash != "" {
		if m.flashErr {
			sb.WriteString(ui.Err(m.flash) + "\n")
		} else {
			sb.WriteString(ui.Success(m.flash) + "\n")
		}
	}

	sb.WriteString("\n" + m.help.View(m.keys))
	return sb.String()
}
