package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"glowcart/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const productColumns = `
	id, name, description, brand, price, discount_percent, stock_quantity,
	is_active, category_id, color, size, skin_type_mask, finish, coverage,
	longwear, waterproof, has_spf, fragrance_free, non_comedogenic,
	photo_friendly, shade_family, tags, image_url, rating_average,
	rating_count, created_at, updated_at
`

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// ListActive fetches the candidate set for the query engine: every
	// active product, in ascending id order for deterministic ranking.
	ListActive(ctx context.Context) ([]*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (
			name, description, brand, price, discount_percent, stock_quantity,
			is_active, category_id, color, size, skin_type_mask, finish, coverage,
			longwear, waterproof, has_spf, fragrance_free, non_comedogenic,
			photo_friendly, shade_family, tags, image_url, rating_average,
			rating_count, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Brand,
		product.Price,
		product.DiscountPercent,
		product.StockQuantity,
		product.IsActive,
		product.CategoryID,
		product.Color,
		product.Size,
		product.SkinTypeMask,
		product.Finish,
		product.Coverage,
		product.Longwear,
		product.Waterproof,
		product.HasSPF,
		product.FragranceFree,
		product.NonComedogenic,
		product.PhotoFriendly,
		product.ShadeFamily,
		product.Tags,
		product.ImageURL,
		product.RatingAverage,
		product.RatingCount,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product := &domain.Product{}
	err := scanProduct(r.db.QueryRowContext(ctx, query, id), product)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// ListActive retrieves every active product as one consistent candidate set.
// Facet filtering, ranking and pagination happen in the query engine, not in
// SQL, so the fetch stays a single statement and the engine sees one
// snapshot.
func (r *productRepository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE is_active = TRUE
		ORDER BY id ASC
	`, productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		if err := scanProduct(rows, product); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s scanner, product *domain.Product) error {
	return s.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Brand,
		&product.Price,
		&product.DiscountPercent,
		&product.StockQuantity,
		&product.IsActive,
		&product.CategoryID,
		&product.Color,
		&product.Size,
		&product.SkinTypeMask,
		&product.Finish,
		&product.Coverage,
		&product.Longwear,
		&product.Waterproof,
		&product.HasSPF,
		&product.FragranceFree,
		&product.NonComedogenic,
		&product.PhotoFriendly,
		&product.ShadeFamily,
		&product.Tags,
		&product.ImageURL,
		&product.RatingAverage,
		&product.RatingCount,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
}
