package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/raihansarker4343/exchange/internal/registry"
	"github.com/raihansarker4343/exchange/internal/user"
)

var (
	ErrUnknownCardType      = errors.New("unknown or disabled card type")
	ErrUnknownPaymentMethod = errors.New("unknown or disabled payment method")
	ErrInvalidAmount        = errors.New("card amount must be positive")
	ErrInvalidStatus        = errors.New("status must be APPROVED or REJECTED")
	ErrInvalidTransition    = errors.New("transaction already reviewed")
)

// LimitExceededError reports the per-transaction cap of the chosen
// payout method so the caller can correct and resubmit.
type LimitExceededError struct {
	Method string
	Limit  decimal.Decimal
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("payout exceeds %s limit of %s BDT per transaction", e.Method, e.Limit.String())
}

type Service interface {
	Submit(ctx context.Context, userID int, req SubmitRequest) (*Transaction, error)
	ListMine(ctx context.Context, userID int) ([]Transaction, error)
	ListAll(ctx context.Context) ([]Transaction, error)
	SetStatus(ctx context.Context, id, status string, note *string) (*Transaction, error)
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo         Repository
	registryRepo registry.Repository
	userRepo     user.Repository
}

func NewService(repo Repository, registryRepo registry.Repository, userRepo user.Repository) Service {
	return &service{
		repo:         repo,
		registryRepo: registryRepo,
		userRepo:     userRepo,
	}
}

// Submit runs the full gate chain before the single insert: enabled rate,
// enabled method, positive amount, payout within the method cap. The rate
// and method name are frozen onto the row; nothing else is mutated.
func (s *service) Submit(ctx context.Context, userID int, req SubmitRequest) (*Transaction, error) {
	rate, err := s.registryRepo.FindEnabledRateByType(ctx, req.CardType)
	if err != nil {
		if errors.Is(err, registry.ErrRateNotFound) {
			return nil, ErrUnknownCardType
		}
		return nil, err
	}

	method, err := s.registryRepo.FindEnabledMethodByName(ctx, req.PayoutMethod)
	if err != nil {
		if errors.Is(err, registry.ErrMethodNotFound) {
			return nil, ErrUnknownPaymentMethod
		}
		return nil, err
	}

	if !req.CardAmountUsd.IsPositive() {
		return nil, ErrInvalidAmount
	}

	payout := req.CardAmountUsd.Mul(rate.Rate)

	if payout.GreaterThan(method.LimitPerTrx) {
		return nil, &LimitExceededError{Method: method.Name, Limit: method.LimitPerTrx}
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	trx := &Transaction{
		ID:              uuid.NewString(),
		UserID:          u.ID,
		UserName:        u.Name,
		CardType:        rate.Type,
		CardLink:        req.CardLink,
		CardAmountUsd:   req.CardAmountUsd,
		ExchangeRate:    rate.Rate,
		PayoutAmountBdt: payout,
		PayoutMethod:    method.Name,
		PayoutNumber:    req.PayoutNumber,
		Status:          StatusPending,
	}

	return s.repo.Create(ctx, trx)
}

func (s *service) ListMine(ctx context.Context, userID int) ([]Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]Transaction, error) {
	return s.repo.ListAll(ctx)
}

// SetStatus moves a PENDING transaction to APPROVED or REJECTED exactly
// once. Terminal states are immutable.
func (s *service) SetStatus(ctx context.Context, id, status string, note *string) (*Transaction, error) {
	if status != StatusApproved && status != StatusRejected {
		return nil, ErrInvalidStatus
	}

	trx, err := s.repo.UpdateStatusIfPending(ctx, id, status, note)
	if err == nil {
		return trx, nil
	}
	if !errors.Is(err, errNotUpdatable) {
		return nil, err
	}

	if _, findErr := s.repo.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}

	return nil, ErrInvalidTransition
}

// Stats aggregates the ledger fresh on every call; only APPROVED payouts
// count toward volume.
func (s *service) Stats(ctx context.Context) (*Stats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalTransactions, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	volume, err := s.repo.SumPayoutByStatus(ctx, StatusApproved)
	if err != nil {
		return nil, err
	}

	pending, err := s.repo.CountByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:        totalUsers,
		TotalTransactions: totalTransactions,
		TotalVolumeBdt:    volume,
		PendingCount:      pending,
	}, nil
}
