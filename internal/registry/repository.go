package registry

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrRateNotFound   = errors.New("gift card rate not found")
	ErrMethodNotFound = errors.New("payment method not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRates(ctx context.Context) ([]GiftCardRate, error) {
	query := `
		SELECT id, type, rate, is_enabled
		FROM gift_card_rates
		ORDER BY type ASC
	`

	var rates []GiftCardRate
	err := r.db.SelectContext(ctx, &rates, query)
	if err != nil {
		return nil, err
	}

	return rates, nil
}

func (r *repository) ListEnabledRates(ctx context.Context) ([]GiftCardRate, error) {
	query := `
		SELECT id, type, rate, is_enabled
		FROM gift_card_rates
		WHERE is_enabled = TRUE
		ORDER BY type ASC
	`

	var rates []GiftCardRate
	err := r.db.SelectContext(ctx, &rates, query)
	if err != nil {
		return nil, err
	}

	return rates, nil
}

func (r *repository) FindEnabledRateByType(ctx context.Context, cardType string) (*GiftCardRate, error) {
	query := `
		SELECT id, type, rate, is_enabled
		FROM gift_card_rates
		WHERE type = $1 AND is_enabled = TRUE
	`

	var rate GiftCardRate
	err := r.db.GetContext(ctx, &rate, query, cardType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRateNotFound
		}
		return nil, err
	}

	return &rate, nil
}

func (r *repository) CreateRate(ctx context.Context, cardType string, rate decimal.Decimal) (*GiftCardRate, error) {
	query := `
		INSERT INTO gift_card_rates (type, rate, is_enabled)
		VALUES ($1, $2, TRUE)
		RETURNING id, type, rate, is_enabled
	`

	var created GiftCardRate
	err := r.db.GetContext(ctx, &created, query, cardType, rate)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) UpdateRate(ctx context.Context, id int, rate decimal.Decimal, isEnabled bool) error {
	query := `
		UPDATE gift_card_rates
		SET rate = $1, is_enabled = $2
		WHERE id = $3
	`

	res, err := r.db.ExecContext(ctx, query, rate, isEnabled, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRateNotFound
	}

	return nil
}

func (r *repository) ListMethods(ctx context.Context) ([]PaymentMethod, error) {
	query := `
		SELECT id, name, is_enabled, limit_per_trx
		FROM payment_methods
		ORDER BY name ASC
	`

	var methods []PaymentMethod
	err := r.db.SelectContext(ctx, &methods, query)
	if err != nil {
		return nil, err
	}

	return methods, nil
}

func (r *repository) ListEnabledMethods(ctx context.Context) ([]PaymentMethod, error) {
	query := `
		SELECT id, name, is_enabled, limit_per_trx
		FROM payment_methods
		WHERE is_enabled = TRUE
		ORDER BY name ASC
	`

	var methods []PaymentMethod
	err := r.db.SelectContext(ctx, &methods, query)
	if err != nil {
		return nil, err
	}

	return methods, nil
}

func (r *repository) FindEnabledMethodByName(ctx context.Context, name string) (*PaymentMethod, error) {
	query := `
		SELECT id, name, is_enabled, limit_per_trx
		FROM payment_methods
		WHERE name = $1 AND is_enabled = TRUE
	`

	var method PaymentMethod
	err := r.db.GetContext(ctx, &method, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMethodNotFound
		}
		return nil, err
	}

	return &method, nil
}

func (r *repository) UpdateMethod(ctx context.Context, id int, limitPerTrx decimal.Decimal, isEnabled bool) error {
	query := `
		UPDATE payment_methods
		SET limit_per_trx = $1, is_enabled = $2
		WHERE id = $3
	`

	res, err := r.db.ExecContext(ctx, query, limitPerTrx, isEnabled, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMethodNotFound
	}

	return nil
}
