package httpapi

import (
	"vastra-be/internal/admin"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admin admin.Service
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.admin.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"totalProducts": stats.TotalProducts,
		"totalOrders":   stats.TotalOrders,
		"totalUsers":    stats.TotalUsers,
		"totalShops":    stats.TotalShops,
		"revenue":       stats.Revenue,
	})
}

func (h *AdminHandler) RecentOrders(c *gin.Context) {
	orders, err := h.admin.RecentOrders(c.Request.Context(), queryInt(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}

	type recentOrderResponse struct {
		ID          string  `json:"id"`
		OrderNumber string  `json:"orderNumber"`
		BuyerEmail  string  `json:"buyerEmail"`
		TotalAmount float64 `json:"totalAmount"`
		Status      string  `json:"status"`
	}
	out := make([]recentOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, recentOrderResponse{
			ID:          o.ID.String(),
			OrderNumber: o.OrderNumber,
			BuyerEmail:  o.BuyerEmail,
			TotalAmount: o.TotalAmount,
			Status:      o.Status,
		})
	}
	respondOK(c, out)
}

func (h *AdminHandler) TopProducts(c *gin.Context) {
	products, err := h.admin.TopProducts(c.Request.Context(), queryInt(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}

	type topProductResponse struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Slug      string  `json:"slug"`
		Price     float64 `json:"price"`
		UnitsSold int     `json:"unitsSold"`
	}
	out := make([]topProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, topProductResponse{
			ID:        p.ID.String(),
			Name:      p.Name,
			Slug:      p.Slug,
			Price:     p.Price,
			UnitsSold: p.UnitsSold,
		})
	}
	respondOK(c, out)
}
