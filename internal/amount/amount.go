// Package amount validates and scales the decimal amount typed by the user.
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxFractionDigits is how many fractional digits the input accepts.
const MaxFractionDigits = 6

// Pattern accepts an optional integer part, an optional decimal point and
// at most six fractional digits. The empty string matches.
var Pattern = regexp.MustCompile(`^\d*(\.\d{0,6})?$`)

var (
	ErrEmptyAmount   = errors.New("amount is empty")
	ErrInvalidAmount = errors.New("invalid amount")
)

// Valid reports whether s is an acceptable (possibly partial) amount.
func Valid(s string) bool {
	return Pattern.MatchString(s)
}

// Filter is the keystroke filter: next replaces prev only when it is valid.
func Filter(prev, next string) string {
	if Valid(next) {
		return next
	}
	return prev
}

// ToBaseUnits converts a decimal string to the token's smallest unit.
// Digits beyond decimals are truncated.
func ToBaseUnits(s string, decimals int32) (*big.Int, error) {
	if !Valid(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if s == "" || s == "." {
		return nil, ErrEmptyAmount
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	return d.Shift(decimals).Truncate(0).BigInt(), nil
}

// FormatUnits renders v scaled down by decimals, trimming trailing zeros.
func FormatUnits(v *big.Int, decimals int32) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -decimals).String()
}
