package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/raihansarker4343/exchange/internal/auth"
	"github.com/raihansarker4343/exchange/internal/logger"
)

type seedRate struct {
	Type      string
	Rate      string
	IsEnabled bool
}

type seedMethod struct {
	Name        string
	LimitPerTrx string
	IsEnabled   bool
}

var defaultRates = []seedRate{
	{Type: "Apple Gift Card", Rate: "105", IsEnabled: true},
	{Type: "Visa Virtual", Rate: "110", IsEnabled: true},
	{Type: "MasterCard", Rate: "108", IsEnabled: true},
	{Type: "ACH Transfer", Rate: "115", IsEnabled: false},
}

var defaultMethods = []seedMethod{
	{Name: "bKash", LimitPerTrx: "25000", IsEnabled: true},
	{Name: "Nagad", LimitPerTrx: "25000", IsEnabled: true},
	{Name: "Rocket", LimitPerTrx: "20000", IsEnabled: true},
	{Name: "CellFin", LimitPerTrx: "50000", IsEnabled: true},
}

// Seed inserts default rates, payout methods and the admin account
// on an empty database. Existing rows are left untouched.
func Seed(ctx context.Context, db *sqlx.DB, adminName, adminEmail, adminPassword string) error {
	var rateCount int
	if err := db.GetContext(ctx, &rateCount, `SELECT COUNT(*) FROM gift_card_rates`); err != nil {
		return fmt.Errorf("failed to count rates: %w", err)
	}
	if rateCount == 0 {
		for _, r := range defaultRates {
			_, err := db.ExecContext(ctx,
				`INSERT INTO gift_card_rates (type, rate, is_enabled) VALUES ($1, $2, $3)`,
				r.Type, r.Rate, r.IsEnabled,
			)
			if err != nil {
				return fmt.Errorf("failed to seed rate %q: %w", r.Type, err)
			}
		}
		logger.Info("Seeded default exchange rates")
	}

	var methodCount int
	if err := db.GetContext(ctx, &methodCount, `SELECT COUNT(*) FROM payment_methods`); err != nil {
		return fmt.Errorf("failed to count payment methods: %w", err)
	}
	if methodCount == 0 {
		for _, m := range defaultMethods {
			_, err := db.ExecContext(ctx,
				`INSERT INTO payment_methods (name, is_enabled, limit_per_trx) VALUES ($1, $2, $3)`,
				m.Name, m.IsEnabled, m.LimitPerTrx,
			)
			if err != nil {
				return fmt.Errorf("failed to seed payment method %q: %w", m.Name, err)
			}
		}
		logger.Info("Seeded default payment methods")
	}

	adminExists, err := Exists(ctx, db, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, adminEmail)
	if err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if !adminExists {
		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO users (name, email, password_hash, role, balance, is_active)
			 VALUES ($1, $2, $3, 'ADMIN', 0, TRUE)`,
			adminName, adminEmail, hash,
		)
		if err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		logger.Info("Seeded admin user", "email", adminEmail)
	}

	return nil
}
