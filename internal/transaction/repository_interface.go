package transaction

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, trx *Transaction) (*Transaction, error)
	FindByID(ctx context.Context, id string) (*Transaction, error)
	ListByUser(ctx context.Context, userID int) ([]Transaction, error)
	ListAll(ctx context.Context) ([]Transaction, error)
	UpdateStatusIfPending(ctx context.Context, id, status string, note *string) (*Transaction, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	SumPayoutByStatus(ctx context.Context, status string) (decimal.Decimal, error)
}
