package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("transaction not found")
	errNotUpdatable = errors.New("transaction not pending")
)

const transactionColumns = `id, user_id, user_name, card_type, card_link, card_amount_usd,
		exchange_rate, payout_amount_bdt, payout_method, payout_number, status,
		admin_note, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, trx *Transaction) (*Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, user_name, card_type, card_link,
			card_amount_usd, exchange_rate, payout_amount_bdt, payout_method,
			payout_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + transactionColumns

	var created Transaction
	err := r.db.GetContext(ctx, &created, query,
		trx.ID, trx.UserID, trx.UserName, trx.CardType, trx.CardLink,
		trx.CardAmountUsd, trx.ExchangeRate, trx.PayoutAmountBdt,
		trx.PayoutMethod, trx.PayoutNumber, trx.Status,
	)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var trx Transaction
	err := r.db.GetContext(ctx, &trx, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &trx, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var txs []Transaction
	err := r.db.SelectContext(ctx, &txs, query, userID)
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY created_at DESC
	`

	var txs []Transaction
	err := r.db.SelectContext(ctx, &txs, query)
	if err != nil {
		return nil, err
	}

	return txs, nil
}

// UpdateStatusIfPending writes the new status only when the row is still
// PENDING, so two concurrent reviews cannot both succeed. A zero-row
// result means the id is unknown or the transaction already reviewed;
// the caller tells those apart with FindByID.
func (r *repository) UpdateStatusIfPending(ctx context.Context, id, status string, note *string) (*Transaction, error) {
	query := `
		UPDATE transactions
		SET status = $1, admin_note = $2, updated_at = NOW()
		WHERE id = $3 AND status = 'PENDING'
		RETURNING ` + transactionColumns

	var trx Transaction
	err := r.db.GetContext(ctx, &trx, query, status, note, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errNotUpdatable
		}
		return nil, err
	}

	return &trx, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM transactions`)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM transactions WHERE status = $1`, status)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) SumPayoutByStatus(ctx context.Context, status string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.GetContext(ctx, &sum,
		`SELECT COALESCE(SUM(payout_amount_bdt), 0) FROM transactions WHERE status = $1`, status)
	if err != nil {
		return decimal.Zero, err
	}

	return sum, nil
}
