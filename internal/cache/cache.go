package cache

import (
	"context"
	"errors"

	"github.com/techieonvacation/ex-earning/internal/domain"
)

// SectionCache holds the rendered section listing served by GET /sections.
type SectionCache interface {
	Get(ctx context.Context) ([]domain.SectionView, error)
	Set(ctx context.Context, sections []domain.SectionView) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")

// Nop is used when no cache is configured. Every read misses.
type Nop struct{}

func (Nop) Get(context.Context) ([]domain.SectionView, error) { return nil, ErrCacheMiss }
func (Nop) Set(context.Context, []domain.SectionView) error { return nil }
func (Nop) Delete(context.Context) error { return nil }
