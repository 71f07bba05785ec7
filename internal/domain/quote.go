package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is one asset's current price. It lives for a single evaluation cycle
// and is never persisted.
type Quote struct {
	Asset    Asset
	Price    decimal.Decimal
	Currency string
	AsOf     time.Time
}

// PriceSource fetches current quotes for the requested assets. The result
// covers the entire requested set or the call fails; partial data is never
// returned.
type PriceSource interface {
	Quotes(ctx context.Context, assets []Asset) (map[Asset]Quote, error)
}
