package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"glowcart/internal/catalog"
	"glowcart/internal/domain"
	"glowcart/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	categoryCacheKey = "catalog:categories"
	categoryCacheTTL = 60 * time.Second
)

// CatalogService defines the interface for catalog business logic
type CatalogService interface {
	Browse(ctx context.Context, query *catalog.BrowseQuery) (*catalog.BrowseResult, error)
	Recommend(ctx context.Context, req *catalog.RoutineRequest, userID string) (*catalog.RoutineResult, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	CreateProduct(ctx context.Context, product *domain.Product) error
}

type catalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	engine     *catalog.Engine
	cache      *redis.Client
	logger     *zap.Logger
}

// NewCatalogService creates a new CatalogService. cache may be nil, in which
// case every query fetches categories directly.
func NewCatalogService(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	cache *redis.Client,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		categories: categories,
		products:   products,
		engine:     catalog.NewEngine(),
		cache:      cache,
		logger:     logger,
	}
}

// Browse takes one catalog snapshot and runs the facet query engine over it.
func (s *catalogService) Browse(ctx context.Context, query *catalog.BrowseQuery) (*catalog.BrowseResult, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.Browse(snap, query), nil
}

// Recommend takes one catalog snapshot and runs the persona engine over it.
// userID is optional; when present it only annotates logging, the rules are
// derived entirely from the request.
func (s *catalogService) Recommend(ctx context.Context, req *catalog.RoutineRequest, userID string) (*catalog.RoutineResult, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := s.engine.Recommend(snap, req)

	s.logger.Info("Routine recommended",
		zap.String("skin", req.Skin),
		zap.String("vibe", req.Vibe),
		zap.String("env", req.Env),
		zap.String("user_id", userID),
		zap.Int("lips", len(result.Lips)),
		zap.Int("eyes", len(result.Eyes)),
		zap.Int("base", len(result.Base)),
		zap.Int("cheeks", len(result.Cheeks)),
	)

	return result, nil
}

// ListCategories returns the flat category list, serving the storefront
// filter sidebar.
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.fetchCategories(ctx)
}

// CreateCategory inserts a category and invalidates the cached list.
func (s *catalogService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return err
	}
	s.invalidateCategories(ctx)
	return nil
}

// CreateProduct inserts a product.
func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	if _, err := s.categories.FindByID(ctx, product.CategoryID); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	return s.products.Create(ctx, product)
}

// snapshot reads the category list and candidate product set once, up front.
// Both queries are independent; a concurrent refresh after this point cannot
// affect the running computation.
func (s *catalogService) snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	categories, err := s.fetchCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	return &catalog.Snapshot{Categories: categories, Products: products}, nil
}

// fetchCategories reads the category list through the Redis cache. Cache
// failures are logged and degrade to a direct repository fetch.
func (s *catalogService) fetchCategories(ctx context.Context) ([]*domain.Category, error) {
	if s.cache != nil {
		payload, err := s.cache.Get(ctx, categoryCacheKey).Bytes()
		if err == nil {
			var categories []*domain.Category
			if err := json.Unmarshal(payload, &categories); err == nil {
				return categories, nil
			}
			s.logger.Warn("Discarding corrupt category cache entry")
			s.invalidateCategories(ctx)
		} else if err != redis.Nil {
			s.logger.Warn("Category cache read failed", zap.Error(err))
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, categoryCacheKey, payload, categoryCacheTTL).Err(); err != nil {
				s.logger.Warn("Category cache write failed", zap.Error(err))
			}
		}
	}

	return categories, nil
}

func (s *catalogService) invalidateCategories(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, categoryCacheKey).Err(); err != nil {
		s.logger.Warn("Category cache invalidation failed", zap.Error(err))
	}
}
