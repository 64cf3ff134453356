package pricing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var promoCodes = map[string]decimal.Decimal{
	"SAVE10":    decimal.RequireFromString("0.10"),
	"WELCOME20": decimal.RequireFromString("0.20"),
	"LUXURY15":  decimal.RequireFromString("0.15"),
}

// NormalizePromoCode trims and upper-cases user input
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LookupPromo returns the discount fraction for a code, case-insensitively
func LookupPromo(code string) (decimal.Decimal, bool) {
	fraction, ok := promoCodes[NormalizePromoCode(code)]
	return fraction, ok
}

// PromoCodes lists the known codes in lexical order
func PromoCodes() []string {
	codes := make([]string, 0, len(promoCodes))
	for code := range promoCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// PercentOff renders a fraction as a whole percentage, e.g. 0.15 -> 15
func PercentOff(fraction decimal.Decimal) int64 {
	return fraction.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
