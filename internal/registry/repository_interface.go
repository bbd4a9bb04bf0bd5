package registry

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	ListRates(ctx context.Context) ([]GiftCardRate, error)
	ListEnabledRates(ctx context.Context) ([]GiftCardRate, error)
	FindEnabledRateByType(ctx context.Context, cardType string) (*GiftCardRate, error)
	CreateRate(ctx context.Context, cardType string, rate decimal.Decimal) (*GiftCardRate, error)
	UpdateRate(ctx context.Context, id int, rate decimal.Decimal, isEnabled bool) error

	ListMethods(ctx context.Context) ([]PaymentMethod, error)
	ListEnabledMethods(ctx context.Context) ([]PaymentMethod, error)
	FindEnabledMethodByName(ctx context.Context, name string) (*PaymentMethod, error)
	UpdateMethod(ctx context.Context, id int, limitPerTrx decimal.Decimal, isEnabled bool) error
}
