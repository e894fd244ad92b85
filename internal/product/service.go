package product

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Cleve-codes/EastCom/internal/cache"
	"github.com/Cleve-codes/EastCom/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheTTL = 5 * time.Minute

type Service interface {
	List(ctx context.Context, filter *Filter, limit, page int32) ([]*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	Featured(ctx context.Context) ([]*Product, error)
}

type service struct {
	repo Repository
	rdb  *redis.Client
}

// NewService wires the catalogue read side. rdb may be nil, in which
// case every read goes to the database.
func NewService(repo Repository, rdb *redis.Client) Service {
	return &service{repo: repo, rdb: rdb}
}

func (s *service) List(ctx context.Context, filter *Filter, limit, page int32) ([]*Product, error) {
	return s.repo.List(ctx, filter, limit, page)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	if s.rdb != nil {
		if data, err := cache.GetProduct(ctx, s.rdb, slug); err == nil {
			var p Product
			if err := json.Unmarshal(data, &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := cache.SetProduct(ctx, s.rdb, slug, p, cacheTTL); err != nil {
			logger.FromCtx(ctx).Warn("failed to cache product",
				zap.String("slug", slug),
				zap.Error(err),
			)
		}
	}

	return p, nil
}

func (s *service) Featured(ctx context.Context) ([]*Product, error) {
	return s.repo.Featured(ctx, 4)
}
