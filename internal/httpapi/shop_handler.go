package httpapi

import (
	"strconv"

	"vastra-be/internal/shop"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	shops shop.Service
}

type shopResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description *string  `json:"description,omitempty"`
	LogoURL     *string  `json:"logoUrl,omitempty"`
	City        *string  `json:"city,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Rating      float64  `json:"rating"`
	IsActive    bool     `json:"isActive"`
}

func toShopResponse(s *shop.Shop) shopResponse {
	return shopResponse{
		ID:          s.ID.String(),
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		LogoURL:     s.LogoURL,
		City:        s.City,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Rating:      s.Rating,
		IsActive:    s.IsActive,
	}
}

func (h *ShopHandler) List(c *gin.Context) {
	shops, err := h.shops.List(c.Request.Context(), queryInt(c, "limit", 20), queryInt(c, "page", 1))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]shopResponse, 0, len(shops))
	for _, s := range shops {
		out = append(out, toShopResponse(s))
	}
	respondOK(c, out)
}

func (h *ShopHandler) GetBySlug(c *gin.Context) {
	s, err := h.shops.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toShopResponse(s))
}

func (h *ShopHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		respondBadRequest(c, "lat is required")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		respondBadRequest(c, "lng is required")
		return
	}
	radius, _ := strconv.ParseFloat(c.Query("radius"), 64)

	shops, err := h.shops.Nearby(c.Request.Context(), shop.NearbyInput{
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  radius,
		Limit:     queryInt(c, "limit", 20),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	type nearbyResponse struct {
		shopResponse
		DistanceKm float64 `json:"distanceKm"`
	}
	out := make([]nearbyResponse, 0, len(shops))
	for _, s := range shops {
		out = append(out, nearbyResponse{shopResponse: toShopResponse(&s.Shop), DistanceKm: s.DistanceKm})
	}
	respondOK(c, out)
}

type registerShopRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	LogoURL     *string  `json:"logoUrl"`
	City        *string  `json:"city"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (h *ShopHandler) Register(c *gin.Context) {
	var req registerShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	s, err := h.shops.Register(c.Request.Context(), shop.RegisterShopInput{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, toShopResponse(s))
}

func (h *ShopHandler) MyShop(c *gin.Context) {
	s, err := h.shops.MyShop(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toShopResponse(s))
}
