package contract_test

import (
	"encoding/json"
	"testing"

	"github.com/Mohsinsiddi/yieldcli/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledABIsRegistered(t *testing.T) {
	ids := make([]string, 0)
	for _, b := range contract.AllBuiltins() {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"erc20", "morpho-factory", "sky-factory", "yield-strategy"}, ids)
}

func TestGetBuiltinNotFound(t *testing.T) {
	_, ok := contract.GetBuiltin("this-id-does-not-exist-xyz")
	assert.False(t, ok)
}

func TestStrategyABIHasVaultMethods(t *testing.T) {
	a := contract.MustBuiltinABI(contract.YieldStrategy)

	for _, name := range []string{"balanceOf", "deposit", "withdraw", "asset", "totalAssets"} {
		_, ok := a.Methods[name]
		assert.True(t, ok, "missing %s", name)
	}
	assert.Equal(t, "deposit(uint256,address)", a.Methods["deposit"].Sig)
	assert.Equal(t, "withdraw(uint256,address,address)", a.Methods["withdraw"].Sig)
}

func TestFactoryABIsHaveCreateStrategy(t *testing.T) {
	for _, id := range []string{contract.MorphoFactory, contract.SkyFactory} {
		a := contract.MustBuiltinABI(id)
		_, ok := a.Methods["createStrategy"]
		assert.True(t, ok, "%s lacks createStrategy", id)
	}
}

func TestMustBuiltinABIPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { contract.MustBuiltinABI("ghost") })
}

func TestBuiltinSourceIsValidJSON(t *testing.T) {
	for _, b := range contract.AllBuiltins() {
		raw, err := b.Source()
		require.NoError(t, err, b.ID)
		assert.True(t, json.Valid(raw), b.ID)
	}
}

func TestRegisterBuiltinOverrides(t *testing.T) {
	orig, _ := contract.GetBuiltin(contract.ERC20)
	t.Cleanup(func() { contract.RegisterBuiltin(orig) })

	contract.RegisterBuiltin(contract.BuiltinKind{ID: contract.ERC20, Name: "Replaced"})
	b, ok := contract.GetBuiltin(contract.ERC20)
	require.True(t, ok)
	assert.Equal(t, "Replaced", b.Name)
}
