package contract

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorKnownValues(t *testing.T) {
	cases := map[string]string{
		"balanceOf(address)":                "0x70a08231",
		"transfer(address,uint256)":         "0xa9059cbb",
		"approve(address,uint256)":          "0x095ea7b3",
		"deposit(uint256,address)":          "0x6e553f65",
		"withdraw(uint256,address,address)": "0xb460af94",
	}
	for sig, want := range cases {
		sel := Selector(sig)
		assert.Equal(t, want, hexutil.Encode(sel[:]), sig)
	}
}

func TestSelectorMatchesGoEthereumID(t *testing.T) {
	a := MustBuiltinABI(YieldStrategy)
	for _, m := range a.Methods {
		sel := Selector(m.Sig)
		assert.Equal(t, m.ID, sel[:], m.Sig)
	}
}

func TestFunctionsListing(t *testing.T) {
	fns := Functions(MustBuiltinABI(ERC20))
	require.NotEmpty(t, fns)

	for i := 1; i < len(fns); i++ {
		assert.LessOrEqual(t, fns[i-1].Name, fns[i].Name, "sorted by name")
	}

	var balanceOf FunctionInfo
	for _, f := range fns {
		if f.Name == "balanceOf" {
			balanceOf = f
		}
	}
	assert.Equal(t, "balanceOf(address)", balanceOf.Signature)
	assert.Equal(t, "0x70a08231", balanceOf.Selector)
	assert.Equal(t, "uint256", balanceOf.Outputs)
	assert.True(t, balanceOf.IsRead())
}

func TestEventsListing(t *testing.T) {
	evs := Events(MustBuiltinABI(ERC20))
	assert.Equal(t, []string{"Approval(address,address,uint256)", "Transfer(address,address,uint256)"}, evs)
}
