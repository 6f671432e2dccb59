package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vastra-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Search(ctx context.Context, filter *ProductFilterInput, sort *ProductSortInput, limit, offset int) ([]*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetFeatured(ctx context.Context, limit int) ([]*Product, error)
	GetTrending(ctx context.Context, limit int) ([]*Product, error)
	GetByShop(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBrands(ctx context.Context) ([]*Brand, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `p.id, p.shop_id, p.category_id, p.brand_id, p.name, p.slug, p.description, p.price, p.original_price, p.sizes, p.colors, p.image_url, p.rating, p.review_count, p.is_featured, p.is_trending, p.is_active, p.created_at, p.updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.ShopID, &p.CategoryID, &p.BrandID, &p.Name, &p.Slug, &p.Description,
		&p.Price, &p.OriginalPrice, pq.Array(&p.Sizes), pq.Array(&p.Colors), &p.ImageURL,
		&p.Rating, &p.ReviewCount, &p.IsFeatured, &p.IsTrending, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) collect(rows *sql.Rows) ([]*Product, error) {
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

// Search runs the storefront catalog query. Filters compose with AND; only
// active products are visible.
func (r *repository) Search(ctx context.Context, filter *ProductFilterInput, sort *ProductSortInput, limit, offset int) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("repo", "product"), zap.String("method", "Search"))

	conditions := []string{"p.is_active = TRUE"}
	var args []any
	argc := 1

	var joins []string
	if filter != nil {
		if filter.Query != nil && *filter.Query != "" {
			conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", argc, argc))
			args = append(args, "%"+*filter.Query+"%")
			argc++
		}
		if filter.CategorySlug != nil && *filter.CategorySlug != "" {
			joins = append(joins, "JOIN categories cat ON cat.id = p.category_id")
			conditions = append(conditions, fmt.Sprintf("cat.slug = $%d", argc))
			args = append(args, *filter.CategorySlug)
			argc++
		}
		if filter.BrandSlug != nil && *filter.BrandSlug != "" {
			joins = append(joins, "JOIN brands b ON b.id = p.brand_id")
			conditions = append(conditions, fmt.Sprintf("b.slug = $%d", argc))
			args = append(args, *filter.BrandSlug)
			argc++
		}
		if filter.MinPrice != nil {
			conditions = append(conditions, fmt.Sprintf("p.price >= $%d", argc))
			args = append(args, *filter.MinPrice)
			argc++
		}
		if filter.MaxPrice != nil {
			conditions = append(conditions, fmt.Sprintf("p.price <= $%d", argc))
			args = append(args, *filter.MaxPrice)
			argc++
		}
	}

	query := `SELECT ` + productColumns + ` FROM products p`
	if len(joins) > 0 {
		query += " " + strings.Join(joins, " ")
	}
	query += " WHERE " + strings.Join(conditions, " AND ")

	orderBy := "p.is_featured DESC, p.created_at DESC"
	if sort != nil {
		direction := "DESC"
		if sort.Direction == SortDirectionAsc {
			direction = "ASC"
		}
		switch sort.Field {
		case SortFieldPrice:
			orderBy = "p.price " + direction
		case SortFieldRating:
			orderBy = "p.rating " + direction
		case SortFieldNewest:
			orderBy = "p.created_at DESC"
		}
	}
	query += fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, argc, argc+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to search products", zap.Error(err))
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return r.collect(rows)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return p, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products p WHERE p.slug = $1 AND p.is_active = TRUE`, slug)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return p, nil
}

func (r *repository) GetFeatured(ctx context.Context, limit int) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+` FROM products p
		WHERE p.is_featured = TRUE AND p.is_active = TRUE
		ORDER BY p.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch featured products: %w", err)
	}
	return r.collect(rows)
}

func (r *repository) GetTrending(ctx context.Context, limit int) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+` FROM products p
		WHERE p.is_trending = TRUE AND p.is_active = TRUE
		ORDER BY p.rating DESC, p.review_count DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending products: %w", err)
	}
	return r.collect(rows)
}

func (r *repository) GetByShop(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+` FROM products p
		WHERE p.shop_id = $1
		ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shop products: %w", err)
	}
	return r.collect(rows)
}

func (r *repository) Create(ctx context.Context, p *Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("repo", "product"), zap.String("method", "Create"))

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, shop_id, category_id, brand_id, name, slug, description, price, original_price, sizes, colors, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`,
		p.ID, p.ShopID, p.CategoryID, p.BrandID, p.Name, p.Slug, p.Description,
		p.Price, p.OriginalPrice, pq.Array(p.Sizes), pq.Array(p.Colors), p.ImageURL, p.IsActive,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(zap.String("repo", "product"), zap.String("method", "Update"))

	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, original_price = $4,
			sizes = $5, colors = $6, image_url = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9`,
		p.Name, p.Description, p.Price, p.OriginalPrice,
		pq.Array(p.Sizes), pq.Array(p.Colors), p.ImageURL, p.IsActive, p.ID)
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) ListBrands(ctx context.Context) ([]*Brand, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch brands: %w", err)
	}
	defer rows.Close()

	var brands []*Brand
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read brands: %w", err)
	}
	return brands, nil
}
