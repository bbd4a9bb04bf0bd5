package transaction

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupTrxMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func trxColumns() []string {
	return []string{"id", "user_id", "user_name", "card_type", "card_link", "card_amount_usd",
		"exchange_rate", "payout_amount_bdt", "payout_method", "payout_number", "status",
		"admin_note", "created_at", "updated_at"}
}

func TestCreateTransaction(t *testing.T) {
	repo, mock, close := setupTrxMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(`INSERT INTO transactions`).
		WithArgs("trx-1", 7, "Alice", "Apple Gift Card", "https://cards.example/abc", "100",
			"105", "10500", "bKash", "01712345678", StatusPending).
		WillReturnRows(sqlmock.NewRows(trxColumns()).
			AddRow("trx-1", 7, "Alice", "Apple Gift Card", "https://cards.example/abc", "100",
				"105", "10500", "bKash", "01712345678", StatusPending, nil, now, now))

	created, err := repo.Create(context.Background(), &Transaction{
		ID:              "trx-1",
		UserID:          7,
		UserName:        "Alice",
		CardType:        "Apple Gift Card",
		CardLink:        "https://cards.example/abc",
		CardAmountUsd:   decimal.NewFromInt(100),
		ExchangeRate:    decimal.NewFromInt(105),
		PayoutAmountBdt: decimal.NewFromInt(10500),
		PayoutMethod:    "bKash",
		PayoutNumber:    "01712345678",
		Status:          StatusPending,
	})

	require.NoError(t, err)
	require.Equal(t, "trx-1", created.ID)
	require.Equal(t, StatusPending, created.Status)
	require.True(t, created.PayoutAmountBdt.Equal(decimal.NewFromInt(10500)))
	require.Nil(t, created.AdminNote)
}

func TestUpdateStatusIfPending(t *testing.T) {
	repo, mock, close := setupTrxMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()
	note := "verified card balance"

	t.Run("Pending row updated", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE transactions`)).
			WithArgs(StatusApproved, note, "trx-1").
			WillReturnRows(sqlmock.NewRows(trxColumns()).
				AddRow("trx-1", 7, "Alice", "Apple Gift Card", "link", "100",
					"105", "10500", "bKash", "017", StatusApproved, note, now, now))

		trx, err := repo.UpdateStatusIfPending(ctx, "trx-1", StatusApproved, &note)
		require.NoError(t, err)
		require.Equal(t, StatusApproved, trx.Status)
		require.NotNil(t, trx.AdminNote)
		require.Equal(t, note, *trx.AdminNote)
	})

	t.Run("Already reviewed row yields no rows", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE transactions`)).
			WithArgs(StatusRejected, nil, "trx-1").
			WillReturnError(sql.ErrNoRows)

		trx, err := repo.UpdateStatusIfPending(ctx, "trx-1", StatusRejected, nil)
		require.Nil(t, trx)
		require.ErrorIs(t, err, errNotUpdatable)
	})
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, close := setupTrxMock(t)
	defer close()

	mock.ExpectQuery(`SELECT .+ FROM transactions WHERE id`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	trx, err := repo.FindByID(context.Background(), "ghost")
	require.Nil(t, trx)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListByUser_OrderedDesc(t *testing.T) {
	repo, mock, close := setupTrxMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM transactions\s+WHERE user_id = \$1\s+ORDER BY created_at DESC`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(trxColumns()).
			AddRow("trx-2", 7, "Alice", "Visa Virtual", "link2", "50",
				"110", "5500", "Nagad", "018", StatusPending, nil, now, now).
			AddRow("trx-1", 7, "Alice", "Apple Gift Card", "link1", "100",
				"105", "10500", "bKash", "017", StatusApproved, nil, now.Add(-time.Hour), now))

	txs, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.Equal(t, "trx-2", txs[0].ID)
}

func TestAggregates(t *testing.T) {
	repo, mock, close := setupTrxMock(t)
	defer close()

	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM transactions`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, count)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM transactions WHERE status = $1`)).
		WithArgs(StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	pending, err := repo.CountByStatus(ctx, StatusPending)
	require.NoError(t, err)
	require.Equal(t, 2, pending)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(payout_amount_bdt), 0) FROM transactions WHERE status = $1`)).
		WithArgs(StatusApproved).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("1000"))

	volume, err := repo.SumPayoutByStatus(ctx, StatusApproved)
	require.NoError(t, err)
	require.True(t, volume.Equal(decimal.NewFromInt(1000)))
}
