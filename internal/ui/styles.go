package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	ColorSuccess   = lipgloss.Color("#00D26A") // green, deposits and success
	ColorWarning   = lipgloss.Color("#FFB800") // yellow, withdrawals and warnings
	ColorError     = lipgloss.Color("#FF4444") // red, errors
	ColorAddress   = lipgloss.Color("#00B4D8") // cyan, addresses and hashes
	ColorValue     = lipgloss.Color("#FFFFFF") // white bold, balances
	ColorMeta      = lipgloss.Color("#555555") // dim gray, metadata
	ColorBorder    = lipgloss.Color("#1E3A5F") // dark blue, UI chrome
	ColorChain     = lipgloss.Color("#9B5DE5") // purple, chain names and titles
	ColorHighlight = lipgloss.Color("#F15BB5") // pink, focus and selection
	ColorInfo      = lipgloss.Color("#4CC9F0") // light blue, info lines
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleChain   = lipgloss.NewStyle().Foreground(ColorChain).Bold(true)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Underline(true)

	StyleSelected = lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorChain).
			Bold(true).
			MarginBottom(1)

	StyleDim = lipgloss.NewStyle().Foreground(ColorMeta)

	styleButton = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorChain).
			Foreground(ColorValue).
			Bold(true).
			Padding(0, 2)

	styleButtonFocused = styleButton.
				BorderForeground(ColorHighlight).
				Foreground(ColorHighlight)

	styleButtonDisabled = styleButton.
				BorderForeground(ColorMeta).
				Foreground(ColorMeta).
				Bold(false)
)

// Banner returns the yieldcli ASCII banner.
func Banner() string {
	art := `
  ██╗   ██╗██╗███████╗██╗     ██████╗
  ╚██╗ ██╔╝██║██╔════╝██║     ██╔══██╗
   ╚████╔╝ ██║█████╗  ██║     ██║  ██║
    ╚██╔╝  ██║██╔══╝  ██║     ██║  ██║
     ██║   ██║███████╗███████╗██████╔╝
     ╚═╝   ╚═╝╚══════╝╚══════╝╚═════╝ `

	tagline := StyleMeta.Render("     Yield-donating strategy vault  ⚡  v0.1.0")
	features := StyleMeta.Render("  ✦ Deposit  ✦ Withdraw  ✦ Simulate first")

	return StyleChain.Render(art) + "\n" + tagline + "\n" + features + "\n"
}

// Success formats a success message.
func Success(msg string) string { return StyleSuccess.Render("✓ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleWarning.Render("⚠ " + msg) }

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Info formats an informational message.
func Info(msg string) string { return StyleInfo.Render("ℹ " + msg) }

// Hint formats a suggestion for the next command to run.
func Hint(msg string) string { return StyleMeta.Render("💡 " + msg) }

// Addr formats an address.
func Addr(a string) string { return StyleAddress.Render(a) }

// Val formats a value.
func Val(v string) string { return StyleValue.Render(v) }

// Meta formats metadata text.
func Meta(m string) string { return StyleMeta.Render(m) }

// ChainName formats a chain name.
func ChainName(c string) string { return StyleChain.Render(c) }

// Button renders a bordered action button. A disabled button is dimmed and
// never shows focus.
func Button(label string, enabled, focused bool) string {
	switch {
	case !enabled:
		return styleButtonDisabled.Render(label)
	case focused:
		return styleButtonFocused.Render(label)
	default:
		return styleButton.Render(label)
	}
}

// TruncateAddr shortens an address for display: 0x1234…5678.
func TruncateAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// TrimErr shortens an error message to fit on one status line.
func TrimErr(err error) string {
	if err == nil {
		return ""
	}
	return trimErr(err.Error())
}

// padR pads s to visible width n (ANSI-safe using lipgloss.Width).
func padR(s string, n int) string {
	w := lipgloss.Width(s)
	if w >= n {
		return s
	}
	return s + strings.Repeat(" ", n-w)
}

const maxErrLen = 30

// trimErr strips noisy prefixes from RPC errors and caps the length.
func trimErr(s string) string {
	for _, prefix := range []string{
		"Post \"", "dial tcp", "connection refused",
		"no healthy RPC", "context deadline", "execution reverted",
	} {
		if idx := strings.Index(s, prefix); idx >= 0 {
			s = s[idx:]
			break
		}
	}
	if len(s) > maxErrLen {
		return s[:maxErrLen] + "…"
	}
	return s
}

// DangerBox frames content that must not leak, such as a freshly generated
// private key.
func DangerBox(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ColorError).
		Foreground(ColorWarning).
		Padding(0, 1).
		Render(content)
}
