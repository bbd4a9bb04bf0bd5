package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Transaction is one submitted gift card exchange. userName, exchangeRate
// and payoutMethod are value copies taken at submission time; later admin
// edits to rates or limits never alter persisted rows.
type Transaction struct {
	ID              string          `db:"id" json:"id"`
	UserID          int             `db:"user_id" json:"userId"`
	UserName        string          `db:"user_name" json:"userName"`
	CardType        string          `db:"card_type" json:"cardType"`
	CardLink        string          `db:"card_link" json:"cardLink"`
	CardAmountUsd   decimal.Decimal `db:"card_amount_usd" json:"cardAmountUsd"`
	ExchangeRate    decimal.Decimal `db:"exchange_rate" json:"exchangeRate"`
	PayoutAmountBdt decimal.Decimal `db:"payout_amount_bdt" json:"payoutAmountBdt"`
	PayoutMethod    string          `db:"payout_method" json:"payoutMethod"`
	PayoutNumber    string          `db:"payout_number" json:"payoutNumber"`
	Status          string          `db:"status" json:"status"`
	AdminNote       *string         `db:"admin_note" json:"adminNote,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updatedAt"`
}

// SubmitRequest carries only client-chosen fields. The exchange rate and
// payout amount are always recomputed server-side.
type SubmitRequest struct {
	CardType      string          `json:"cardType" binding:"required"`
	CardLink      string          `json:"cardLink" binding:"required" validate:"required,max=2000"`
	CardAmountUsd decimal.Decimal `json:"cardAmountUsd" binding:"required"`
	PayoutMethod  string          `json:"payoutMethod" binding:"required"`
	PayoutNumber  string          `json:"payoutNumber" binding:"required" validate:"required,max=32"`
}

type ReviewRequest struct {
	Status string  `json:"status" binding:"required"`
	Note   *string `json:"note"`
}

type Stats struct {
	TotalUsers        int             `json:"totalUsers"`
	TotalTransactions int             `json:"totalTransactions"`
	TotalVolumeBdt    decimal.Decimal `json:"totalVolumeBdt"`
	PendingCount      int             `json:"pendingCount"`
}
