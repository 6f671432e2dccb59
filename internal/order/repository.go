package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vastra-be/internal/address"
	"vastra-be/internal/logger"
	"vastra-be/internal/user"
	"vastra-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateFromCart(ctx context.Context, o *Order, policy PricingPolicy) (*Order, error)
	GetByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*Order, error)
	GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*Order, error)
	FetchOrders(ctx context.Context, filter *OrderFilterInput, sort *OrderSortInput, limit, offset int) ([]*Order, error)
	FetchShopOrders(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*Order, error)
	OrderHasShopItems(ctx context.Context, orderID, shopID uuid.UUID) (bool, error)
	GetUserAddress(ctx context.Context, addressID, userID uuid.UUID) (*address.Address, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to OrderStatus) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, order_number, subtotal, shipping_fee, total_amount, payment_method, status, shipping_address_id, idempotency_key, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.Subtotal, &o.ShippingFee, &o.TotalAmount,
		&o.PaymentMethod, &o.Status, &o.AddressID, &o.IdempotencyKey, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateFromCart turns the user's cart into an order inside a single
// transaction. The cart rows are locked for the duration so that a
// concurrent checkout for the same user serializes behind this one and
// then finds the cart empty.
func (r *repository) CreateFromCart(ctx context.Context, o *Order, policy PricingPolicy) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("repo", "order"), zap.String("method", "CreateFromCart"))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT c.product_id, c.quantity, c.size, c.color, p.name, p.price
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at
		FOR UPDATE OF c`, o.UserID)
	if err != nil {
		log.Error("failed to lock cart items", zap.Error(err))
		return nil, fmt.Errorf("failed to lock cart items: %w", err)
	}

	var items []OrderItem
	var lines []PricedLine
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.Size, &it.Color, &it.ProductName, &it.UnitPrice); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		it.ID = uuid.New()
		it.OrderID = o.ID
		items = append(items, it)
		lines = append(lines, PricedLine{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}
	rows.Close()

	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	quote := PriceCart(lines, policy)
	o.Subtotal = quote.Subtotal
	o.ShippingFee = quote.Shipping
	o.TotalAmount = quote.Total

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, user_id, order_number, subtotal, shipping_fee, total_amount, payment_method, status, shipping_address_id, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		o.ID, o.UserID, o.OrderNumber, o.Subtotal, o.ShippingFee, o.TotalAmount,
		o.PaymentMethod, o.Status, o.AddressID, o.IdempotencyKey,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	for _, it := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, size, color)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.Size, it.Color)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return nil, err
	}

	o.Items = items
	log.Info("order created", zap.String("orderID", o.ID.String()), zap.Float64("total", o.TotalAmount))
	return o, nil
}

// GetByIdempotencyKey returns the order previously created with the given
// key, or nil when none exists.
func (r *repository) GetByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1 AND idempotency_key = $2`, userID, key)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order by idempotency key: %w", err)
	}
	return o, nil
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("repo", "order"), zap.String("method", "GetOrderDetail"))

	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1`, orderID)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to fetch order", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, size, color
		FROM order_items
		WHERE order_id = $1`, orderID)
	if err != nil {
		log.Error("failed to fetch order items", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Size, &it.Color); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	addr, err := r.getAddress(ctx, o.AddressID)
	if err != nil {
		log.Warn("failed to fetch shipping address", zap.Error(err))
	} else {
		o.ShippingAddress = addr
	}

	return o, nil
}

func (r *repository) getAddress(ctx context.Context, addressID uuid.UUID) (*address.Address, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, type, full_name, phone, address_line_1, address_line_2, city, state, postal_code, country, is_default, created_at
		FROM addresses
		WHERE id = $1`, addressID)

	var a address.Address
	err := row.Scan(&a.ID, &a.UserID, &a.Type, &a.FullName, &a.Phone, &a.Line1, &a.Line2,
		&a.City, &a.State, &a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetUserAddress(ctx context.Context, addressID, userID uuid.UUID) (*address.Address, error) {
	a, err := r.getAddress(ctx, addressID)
	if err == sql.ErrNoRows {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch address: %w", err)
	}
	if a.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return a, nil
}

// FetchOrders lists orders visible to the caller. Buyers see their own
// orders only; admins see everything.
func (r *repository) FetchOrders(ctx context.Context, filter *OrderFilterInput, sort *OrderSortInput, limit, offset int) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("repo", "order"), zap.String("method", "FetchOrders"))

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}
	role, _ := utils.GetUserRoleFromContext(ctx)

	var conditions []string
	var args []any
	argc := 1

	if role != string(user.RoleAdmin) {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argc))
		args = append(args, userID)
		argc++
	}

	if filter != nil {
		if filter.Search != nil && *filter.Search != "" {
			conditions = append(conditions, fmt.Sprintf("(order_number ILIKE $%d OR id::text ILIKE $%d)", argc, argc))
			args = append(args, "%"+*filter.Search+"%")
			argc++
		}
		if filter.Status != nil {
			conditions = append(conditions, fmt.Sprintf("status = $%d", argc))
			args = append(args, *filter.Status)
			argc++
		}
		if filter.DateFrom != nil {
			conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argc))
			args = append(args, *filter.DateFrom)
			argc++
		}
		if filter.DateTo != nil {
			conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argc))
			args = append(args, *filter.DateTo)
			argc++
		}
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	orderBy := "created_at"
	direction := "DESC"
	if sort != nil {
		if sort.Field == OrderSortFieldTotal {
			orderBy = "total_amount"
		}
		if sort.Direction == SortDirectionAsc {
			direction = "ASC"
		}
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", orderBy, direction, argc, argc+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to fetch orders", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}

// FetchShopOrders lists orders that contain at least one product belonging
// to the given shop.
func (r *repository) FetchShopOrders(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("repo", "order"), zap.String("method", "FetchShopOrders"))

	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT o.id, o.user_id, o.order_number, o.subtotal, o.shipping_fee, o.total_amount, o.payment_method, o.status, o.shipping_address_id, o.idempotency_key, o.created_at, o.updated_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE p.shop_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3`, shopID, limit, offset)
	if err != nil {
		log.Error("failed to fetch shop orders", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch shop orders: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}

// OrderHasShopItems reports whether the order carries at least one line
// item sold by the given shop.
func (r *repository) OrderHasShopItems(ctx context.Context, orderID, shopID uuid.UUID) (bool, error) {
	log := logger.FromCtx(ctx).With(zap.String("repo", "order"), zap.String("method", "OrderHasShopItems"))

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = $1 AND p.shop_id = $2
		)`, orderID, shopID).Scan(&exists)
	if err != nil {
		log.Error("failed to check order shop items", zap.Error(err))
		return false, fmt.Errorf("failed to check order shop items: %w", err)
	}
	return exists, nil
}

// UpdateStatus moves an order between statuses. The current status is part
// of the WHERE clause so a concurrent conflicting transition loses cleanly.
func (r *repository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to OrderStatus) error {
	log := logger.FromCtx(ctx).With(zap.String("repo", "order"), zap.String("method", "UpdateStatus"))

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`, to, orderID, from)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrInvalidTransition
	}
	log.Info("order status updated", zap.String("orderID", orderID.String()), zap.String("status", string(to)))
	return nil
}
