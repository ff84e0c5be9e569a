package contract

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/sha3"
)

// FunctionInfo is one row of an ABI listing.
type FunctionInfo struct {
	Name            string
	Signature       string // canonical, e.g. "deposit(uint256,address)"
	Selector        string // 0x-prefixed 4-byte selector
	StateMutability string
	Outputs         string
}

// IsRead reports whether the function is view or pure.
func (f FunctionInfo) IsRead() bool {
	return f.StateMutability == "view" || f.StateMutability == "pure"
}

// Selector returns the 4-byte function selector for a canonical signature.
func Selector(signature string) [4]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	var out [4]byte
	copy(out[:], h.Sum(nil)[:4])
	return out
}

// Functions lists the functions of a, sorted by name then signature.
func Functions(a abi.ABI) []FunctionInfo {
	out := make([]FunctionInfo, 0, len(a.Methods))
	for _, m := range a.Methods {
		sel := Selector(m.Sig)
		outs := make([]string, len(m.Outputs))
		for i, o := range m.Outputs {
			outs[i] = o.Type.String()
		}
		out = append(out, FunctionInfo{
			Name:            m.RawName,
			Signature:       m.Sig,
			Selector:        hexutil.Encode(sel[:]),
			StateMutability: m.StateMutability,
			Outputs:         strings.Join(outs, ","),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Signature < out[j].Signature
	})
	return out
}

// Events lists the canonical event signatures of a, sorted.
func Events(a abi.ABI) []string {
	out := make([]string, 0, len(a.Events))
	for _, e := range a.Events {
		out = append(out, e.Sig)
	}
	sort.Strings(out)
	return out
}
