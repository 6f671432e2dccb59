package order

import (
	"strings"
	"time"

	"vastra-be/internal/address"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentUPI            PaymentMethod = "upi"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentCashOnDelivery:
		return true
	}
	return false
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Terminal statuses accept no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition encodes the order lifecycle: forward-only through
// pending → confirmed → shipped → delivered, with cancellation allowed
// from any non-terminal state.
func CanTransition(from, to OrderStatus) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}

	switch from {
	case StatusPending:
		return to == StatusConfirmed
	case StatusConfirmed:
		return to == StatusShipped
	case StatusShipped:
		return to == StatusDelivered
	}
	return false
}

type Order struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	OrderNumber    string
	Subtotal       float64
	ShippingFee    float64
	TotalAmount    float64
	PaymentMethod  PaymentMethod
	Status         OrderStatus
	AddressID      uuid.UUID
	IdempotencyKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items           []OrderItem
	ShippingAddress *address.Address
	BuyerName       string
}

// OrderItem is immutable once written; name and price are snapshotted from
// the product row at checkout time.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   float64
	Size        string
	Color       string
}

func (i OrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// NewOrderNumber derives a short human-readable reference from an order id.
func NewOrderNumber(id uuid.UUID) string {
	return "ORD-" + strings.ToUpper(strings.SplitN(id.String(), "-", 2)[0])
}

type PlaceOrderInput struct {
	AddressID      uuid.UUID
	PaymentMethod  PaymentMethod
	IdempotencyKey string
}

type OrderSortField string

const (
	OrderSortFieldCreatedAt OrderSortField = "CREATED_AT"
	OrderSortFieldTotal     OrderSortField = "TOTAL"
)

type SortDirection string

const (
	SortDirectionAsc  SortDirection = "ASC"
	SortDirectionDesc SortDirection = "DESC"
)

type OrderFilterInput struct {
	Search   *string
	Status   *OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

type OrderSortInput struct {
	Field     OrderSortField
	Direction SortDirection
}
