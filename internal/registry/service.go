package registry

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidRate  = errors.New("rate must be positive")
	ErrInvalidLimit = errors.New("limit must be positive")
)

type Service interface {
	ListRates(ctx context.Context) ([]GiftCardRate, error)
	ListMethods(ctx context.Context) ([]PaymentMethod, error)
	CreateRate(ctx context.Context, req CreateRateRequest) (*GiftCardRate, error)
	UpdateRates(ctx context.Context, edits []RateEdit) error
	UpdateMethods(ctx context.Context, edits []MethodEdit) error
}

type service struct {
	repo  Repository
	cache *Cache
}

func NewService(repo Repository, cache *Cache) Service {
	return &service{
		repo:  repo,
		cache: cache,
	}
}

func (s *service) ListRates(ctx context.Context) ([]GiftCardRate, error) {
	if s.cache != nil {
		if rates, ok := s.cache.GetRates(ctx); ok {
			return rates, nil
		}
	}

	rates, err := s.repo.ListRates(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetRates(ctx, rates)
	}

	return rates, nil
}

func (s *service) ListMethods(ctx context.Context) ([]PaymentMethod, error) {
	if s.cache != nil {
		if methods, ok := s.cache.GetMethods(ctx); ok {
			return methods, nil
		}
	}

	methods, err := s.repo.ListMethods(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetMethods(ctx, methods)
	}

	return methods, nil
}

func (s *service) CreateRate(ctx context.Context, req CreateRateRequest) (*GiftCardRate, error) {
	if !req.Rate.IsPositive() {
		return nil, ErrInvalidRate
	}

	rate, err := s.repo.CreateRate(ctx, req.Type, req.Rate)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	return rate, nil
}

// UpdateRates applies edits one at a time; the first failure aborts the
// remaining edits and fails the whole call. Already-applied edits are
// not rolled back.
func (s *service) UpdateRates(ctx context.Context, edits []RateEdit) error {
	for _, edit := range edits {
		if !edit.Rate.IsPositive() {
			return fmt.Errorf("rate %d: %w", edit.ID, ErrInvalidRate)
		}
		if err := s.repo.UpdateRate(ctx, edit.ID, edit.Rate, edit.IsEnabled); err != nil {
			return fmt.Errorf("rate %d: %w", edit.ID, err)
		}
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	return nil
}

func (s *service) UpdateMethods(ctx context.Context, edits []MethodEdit) error {
	for _, edit := range edits {
		if !edit.LimitPerTrx.IsPositive() {
			return fmt.Errorf("method %d: %w", edit.ID, ErrInvalidLimit)
		}
		if err := s.repo.UpdateMethod(ctx, edit.ID, edit.LimitPerTrx, edit.IsEnabled); err != nil {
			return fmt.Errorf("method %d: %w", edit.ID, err)
		}
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	return nil
}
