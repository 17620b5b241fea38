package checkout

import "github.com/shopspring/decimal"

// ServiceFee computes the platform surcharge on a subtotal expressed in
// minor currency units, with the rate given in basis points (500 = 5%).
// Rounding is half away from zero: 333 at 5% yields 16.65 -> 17.
func ServiceFee(subtotalCents int, rateBps int) int {
	if subtotalCents <= 0 || rateBps <= 0 {
		return 0
	}
	fee := decimal.NewFromInt(int64(subtotalCents)).
		Mul(decimal.NewFromInt(int64(rateBps))).
		Div(decimal.NewFromInt(10000))
	return int(fee.Round(0).IntPart())
}
