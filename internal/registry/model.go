package registry

import "github.com/shopspring/decimal"

// GiftCardRate converts a card's USD face value to BDT for one card type.
type GiftCardRate struct {
	ID        int             `db:"id" json:"id"`
	Type      string          `db:"type" json:"type"`
	Rate      decimal.Decimal `db:"rate" json:"rate"`
	IsEnabled bool            `db:"is_enabled" json:"isEnabled"`
}

// PaymentMethod is a payout channel with a per-transaction cap.
type PaymentMethod struct {
	ID          int             `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	IsEnabled   bool            `db:"is_enabled" json:"isEnabled"`
	LimitPerTrx decimal.Decimal `db:"limit_per_trx" json:"limitPerTrx"`
}

type RateEdit struct {
	ID        int             `json:"id" binding:"required"`
	Rate      decimal.Decimal `json:"rate"`
	IsEnabled bool            `json:"isEnabled"`
}

type MethodEdit struct {
	ID          int             `json:"id" binding:"required"`
	LimitPerTrx decimal.Decimal `json:"limitPerTrx"`
	IsEnabled   bool            `json:"isEnabled"`
}

type CreateRateRequest struct {
	Type string          `json:"type" binding:"required"`
	Rate decimal.Decimal `json:"rate"`
}
