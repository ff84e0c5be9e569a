package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary before all E2E tests.
	tmp, err := os.MkdirTemp("", "yieldcli-e2e-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmp)

	binaryPath = filepath.Join(tmp, "yieldcli")
	// Build from the module root (two levels up from test/e2e/).
	moduleRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		panic(err)
	}
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = moduleRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func runCLI(t *testing.T, configDir string, args ...string) (string, error) {
	t.Helper()
	return runCLIStdin(t, configDir, "", args...)
}

func runCLIStdin(t *testing.T, configDir, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "YIELDCLI_CONFIG_DIR="+configDir, "HOME="+configDir)
	cmd.Stdin = strings.NewReader(stdin)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "yieldcli")
	assert.Contains(t, out, "0.1.0")
}

func TestHelpCommand(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "--help")
	require.NoError(t, err)
	lower := strings.ToLower(out)
	for _, sub := range []string{"deposit", "withdraw", "status", "wallet", "abis", "showcase", "config", "rpc"} {
		assert.Contains(t, lower, sub)
	}
	assert.Contains(t, out, "--testnet")
	assert.Contains(t, out, "--mainnet")
}

func TestWalletAddAndList(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "wallet", "add", "viewer", "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "wallet", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "viewer")
	assert.Contains(t, out, "0xd8dA")
	assert.Contains(t, out, "watch-only")
}

func TestWalletAddRejectsBadAddress(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "wallet", "add", "bad", "0x1234")
	assert.Error(t, err)
	assert.Contains(t, out, "invalid address")
}

func TestWalletRemove(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "wallet", "add", "w1", "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	require.NoError(t, err)

	_, err = runCLIStdin(t, dir, "y\n", "wallet", "remove", "w1")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "wallet", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "w1")
}

func TestWalletUse(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "wallet", "add", "viewer", "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	require.NoError(t, err)

	_, err = runCLI(t, dir, "wallet", "use", "viewer")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "viewer")
}

func TestDepositRejectsInvalidAmount(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "deposit", "1.1234567")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(out), "amount")
}

func TestDepositWithoutWalletHints(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "deposit", "1")
	assert.Error(t, err)
	assert.Contains(t, out, "wallet add")
}

func TestConfigShow(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "default_network")
	assert.Contains(t, out, "strategy_address")
	assert.Contains(t, out, "USDC")
}

func TestConfigSetNetworkMode(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "config", "set", "network_mode", "testnet")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "testnet")
}

func TestConfigSetInvalidValues(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "config", "set", "network_mode", "devnet")
	assert.Error(t, err)

	_, err = runCLI(t, dir, "config", "set", "default_network", "unknownchain99")
	assert.Error(t, err)

	out, err := runCLI(t, dir, "config", "set", "nope", "1")
	assert.Error(t, err)
	assert.Contains(t, out, "unknown config key")
}

func TestConfigRPCAdd(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "config", "rpc-add", "base", "https://custom.rpc.url")
	require.NoError(t, err)

	out, _ := runCLI(t, dir, "rpc", "list", "base")
	assert.Contains(t, out, "custom.rpc.url")
}

func TestABIsList(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "abis", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "yield-strategy")
	assert.Contains(t, out, "morpho-factory")
	assert.Contains(t, out, "sky-factory")
}

func TestABIsShowReads(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "abis", "show", "yield-strategy", "--reads")
	require.NoError(t, err)
	assert.Contains(t, out, "balanceOf")
	assert.NotContains(t, out, "deposit(")
}

func TestABIsShowUnknown(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "abis", "show", "nope")
	assert.Error(t, err)
}

func TestTestnetMainnetMutuallyExclusive(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "--testnet", "--mainnet", "config", "show")
	assert.Error(t, err)
}

func TestUnknownCommandShowsError(t *testing.T) {
	out, _ := runCLI(t, t.TempDir(), "unknowncommand")
	assert.Contains(t, strings.ToLower(out), "unknown command")
}
