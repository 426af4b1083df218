// Package provider defines the external-collaborator contracts the
// services consume. Implementations live in infra/provider.
package provider

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// ExchangeRate supplies the USD to KRW rate. Implementations are expected
// to cache and to fall back to a constant on fetch failure; callers
// treat the rate as always available.
type ExchangeRate interface {
	// USDToKRW returns the current USD to KRW rate.
	USDToKRW(ctx context.Context) (decimal.Decimal, error)
}

// ConvertToKRW converts amount from the given currency to KRW using the
// provided rate source. Only KRW and USD are supported.
func ConvertToKRW(
	ctx context.Context,
	rates ExchangeRate,
	amount decimal.Decimal,
	currency string,
) (decimal.Decimal, error) {
	switch currency {
	case "", "KRW":
		return amount, nil
	case "USD":
		rate, err := rates.USDToKRW(ctx)
		if err != nil {
			return decimal.Zero, err
		}
		return amount.Mul(rate), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported currency: %s", currency)
	}
}
