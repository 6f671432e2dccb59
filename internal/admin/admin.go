package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vastra-be/internal/logger"
	"vastra-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrForbidden = errors.New("admin role required")

// DashboardStats aggregates the headline numbers for the admin console.
type DashboardStats struct {
	TotalProducts int
	TotalOrders   int
	TotalUsers    int
	TotalShops    int
	Revenue       float64
}

type RecentOrder struct {
	ID          uuid.UUID
	OrderNumber string
	BuyerEmail  string
	TotalAmount float64
	Status      string
	CreatedAt   time.Time
}

type TopProduct struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Price     float64
	UnitsSold int
}

type Repository interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	RecentOrders(ctx context.Context, limit int) ([]*RecentOrder, error)
	TopProducts(ctx context.Context, limit int) ([]*TopProduct, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Stats runs the dashboard aggregates in one round trip. Cancelled orders
// are excluded from revenue but still counted.
func (r *repository) Stats(ctx context.Context) (*DashboardStats, error) {
	log := logger.FromCtx(ctx).With(zap.String("repo", "admin"), zap.String("method", "Stats"))

	var s DashboardStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM profiles),
			(SELECT COUNT(*) FROM shops),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> 'cancelled')`,
	).Scan(&s.TotalProducts, &s.TotalOrders, &s.TotalUsers, &s.TotalShops, &s.Revenue)
	if err != nil {
		log.Error("failed to fetch dashboard stats", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch dashboard stats: %w", err)
	}
	return &s, nil
}

func (r *repository) RecentOrders(ctx context.Context, limit int) ([]*RecentOrder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.order_number, pr.email, o.total_amount, o.status, o.created_at
		FROM orders o
		JOIN profiles pr ON pr.id = o.user_id
		ORDER BY o.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}
	defer rows.Close()

	var orders []*RecentOrder
	for rows.Next() {
		var o RecentOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.BuyerEmail, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent orders: %w", err)
	}
	return orders, nil
}

func (r *repository) TopProducts(ctx context.Context, limit int) ([]*TopProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.slug, p.price, COALESCE(SUM(oi.quantity), 0) AS units_sold
		FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.id
		GROUP BY p.id, p.name, p.slug, p.price
		ORDER BY units_sold DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top products: %w", err)
	}
	defer rows.Close()

	var products []*TopProduct
	for rows.Next() {
		var p TopProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.UnitsSold); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read top products: %w", err)
	}
	return products, nil
}

type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	RecentOrders(ctx context.Context, limit int) ([]*RecentOrder, error)
	TopProducts(ctx context.Context, limit int) ([]*TopProduct, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) requireAdmin(ctx context.Context) error {
	role, ok := utils.GetUserRoleFromContext(ctx)
	if !ok || role != "admin" {
		return ErrForbidden
	}
	return nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.Stats(ctx)
}

func (s *service) RecentOrders(ctx context.Context, limit int) ([]*RecentOrder, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.repo.RecentOrders(ctx, limit)
}

func (s *service) TopProducts(ctx context.Context, limit int) ([]*TopProduct, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.repo.TopProducts(ctx, limit)
}
