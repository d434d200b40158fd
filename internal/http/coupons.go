package http

import (
	"strings"

	"github.com/shopspring/decimal"
)

// coupons maps a code to its percentage off the subtotal.
var coupons = map[string]int64{
	"SAVE20":      20,
	"WELCOME10":   10,
	"FREESHIP":    15,
	"NEWCUSTOMER": 25,
	"LOYALTY":     30,
}

// couponDiscount resolves code, case-insensitively, to an absolute discount on
// subtotal. The second result is the normalized code.
func couponDiscount(code string, subtotal decimal.Decimal) (decimal.Decimal, string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	pct, ok := coupons[normalized]
	if !ok {
		return decimal.Zero, "", false
	}
	return subtotal.Mul(decimal.NewFromInt(pct)).Div(decimal.NewFromInt(100)), normalized, true
}
