package contract

import (
	"bytes"
	"embed"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed abis/*.json
var abiFS embed.FS

// Built-in ABI IDs.
const (
	YieldStrategy = "yield-strategy"
	MorphoFactory = "morpho-factory"
	SkyFactory    = "sky-factory"
	ERC20         = "erc20"
)

// BuiltinKind describes a contract type whose ABI is embedded in the binary.
// New built-ins drop a JSON file into abis/ and register it in init().
type BuiltinKind struct {
	ID          string  // machine key, e.g. "yield-strategy"
	Name        string  // human label
	Description string  // one-line summary shown in `abis list`
	File        string  // path of the embedded JSON
	ABI         abi.ABI // parsed ABI, ready to pack and unpack
}

var builtinRegistry = map[string]BuiltinKind{}

// RegisterBuiltin adds a built-in ABI to the global registry.
func RegisterBuiltin(b BuiltinKind) {
	builtinRegistry[b.ID] = b
}

// GetBuiltin returns a built-in by ID. ok is false if not found.
func GetBuiltin(id string) (BuiltinKind, bool) {
	b, ok := builtinRegistry[id]
	return b, ok
}

// MustBuiltinABI returns the parsed ABI for a registered ID and panics if it
// is missing; only used with the constants above.
func MustBuiltinABI(id string) abi.ABI {
	b, ok := builtinRegistry[id]
	if !ok {
		panic(fmt.Sprintf("contract: no builtin ABI %q", id))
	}
	return b.ABI
}

// AllBuiltins returns all registered built-ins sorted by ID.
func AllBuiltins() []BuiltinKind {
	out := make([]BuiltinKind, 0, len(builtinRegistry))
	for _, b := range builtinRegistry {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Source returns the raw JSON of a built-in.
func (b BuiltinKind) Source() ([]byte, error) {
	return abiFS.ReadFile(b.File)
}

func registerEmbedded(id, name, desc, file string) {
	raw, err := abiFS.ReadFile(file)
	if err != nil {
		panic(fmt.Sprintf("contract: reading %s: %v", file, err))
	}
	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("contract: parsing %s: %v", file, err))
	}
	RegisterBuiltin(BuiltinKind{ID: id, Name: name, Description: desc, File: file, ABI: parsed})
}

func init() {
	registerEmbedded(YieldStrategy, "Yield Donating Tokenized Strategy",
		"Strategy contract for automated yield donations with tokenization",
		"abis/YieldDonatingTokenizedStrategy.json")
	registerEmbedded(MorphoFactory, "Morpho Compounder Strategy Factory",
		"Factory contract for creating Morpho yield compounding strategies",
		"abis/MorphoCompounderStrategyFactory.json")
	registerEmbedded(SkyFactory, "Sky Compounder Strategy Factory",
		"Factory contract for creating Sky protocol compounding strategies",
		"abis/SkyCompounderStrategyFactory.json")
	registerEmbedded(ERC20, "ERC-20 Token",
		"Standard fungible token interface",
		"abis/ERC20.json")
}
