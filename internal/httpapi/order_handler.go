package httpapi

import (
	"time"

	"vastra-be/internal/metrics"
	"vastra-be/internal/order"
	"vastra-be/internal/shop"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orders  order.Service
	shops   shop.Service
	metrics *metrics.Metrics
}

type orderItemResponse struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Subtotal    float64 `json:"subtotal"`
}

type orderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	Subtotal        float64             `json:"subtotal"`
	ShippingFee     float64             `json:"shippingFee"`
	TotalAmount     float64             `json:"totalAmount"`
	PaymentMethod   string              `json:"paymentMethod"`
	Status          string              `json:"status"`
	Items           []orderItemResponse `json:"items,omitempty"`
	ShippingAddress *addressResponse    `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

func toOrderResponse(o *order.Order) orderResponse {
	out := orderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		Subtotal:      o.Subtotal,
		ShippingFee:   o.ShippingFee,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, orderItemResponse{
			ProductID:   it.ProductID.String(),
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Size:        it.Size,
			Color:       it.Color,
			Subtotal:    it.Subtotal(),
		})
	}
	if o.ShippingAddress != nil {
		addr := toAddressResponse(o.ShippingAddress)
		out.ShippingAddress = &addr
	}
	return out
}

type placeOrderRequest struct {
	AddressID      string `json:"addressId" binding:"required"`
	PaymentMethod  string `json:"paymentMethod" binding:"required"`
	IdempotencyKey string `json:"idempotencyKey"`
}

func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	addressID, err := uuid.Parse(req.AddressID)
	if err != nil {
		respondBadRequest(c, "invalid address id")
		return
	}

	// The header wins over the body field when both are sent.
	key := c.GetHeader("Idempotency-Key")
	if key == "" {
		key = req.IdempotencyKey
	}

	o, err := h.orders.PlaceOrder(c.Request.Context(), order.PlaceOrderInput{
		AddressID:      addressID,
		PaymentMethod:  order.PaymentMethod(req.PaymentMethod),
		IdempotencyKey: key,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordOrder(o.TotalAmount)
	}
	respondCreated(c, toOrderResponse(o))
}

func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid order id")
		return
	}
	o, err := h.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toOrderResponse(o))
}

func (h *OrderHandler) List(c *gin.Context) {
	filter := &order.OrderFilterInput{
		Search: queryStrPtr(c, "q"),
	}
	if status := c.Query("status"); status != "" {
		s := order.OrderStatus(status)
		filter.Status = &s
	}

	var sort *order.OrderSortInput
	switch c.Query("sort") {
	case "total_asc":
		sort = &order.OrderSortInput{Field: order.OrderSortFieldTotal, Direction: order.SortDirectionAsc}
	case "total_desc":
		sort = &order.OrderSortInput{Field: order.OrderSortFieldTotal, Direction: order.SortDirectionDesc}
	case "oldest":
		sort = &order.OrderSortInput{Field: order.OrderSortFieldCreatedAt, Direction: order.SortDirectionAsc}
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), filter, sort,
		queryInt(c, "limit", 20), queryInt(c, "page", 1))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	respondOK(c, out)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid order id")
		return
	}
	o, err := h.orders.CancelOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toOrderResponse(o))
}

func (h *OrderHandler) ListShopOrders(c *gin.Context) {
	myShop, err := h.shops.MyShop(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	orders, err := h.orders.ListShopOrders(c.Request.Context(), myShop.ID,
		queryInt(c, "limit", 20), queryInt(c, "page", 1))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	respondOK(c, out)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid order id")
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), orderID, order.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toOrderResponse(o))
}
