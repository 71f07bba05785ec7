package coingecko

import "github.com/shopspring/decimal"

// simplePriceResponse mirrors the /simple/price payload:
// {"bitcoin": {"usd": 50123.45}, ...}
type simplePriceResponse map[string]map[string]decimal.Decimal

func (r simplePriceResponse) price(coinID, currency string) (decimal.Decimal, bool) {
	prices, ok := r[coinID]
	if !ok {
		return decimal.Decimal{}, false
	}
	price, ok := prices[currency]
	return price, ok
}
