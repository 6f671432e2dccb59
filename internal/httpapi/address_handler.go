package httpapi

import (
	"vastra-be/internal/address"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AddressHandler struct {
	addresses address.Service
}

type addressResponse struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	FullName   string  `json:"fullName"`
	Phone      string  `json:"phone"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postalCode"`
	Country    string  `json:"country"`
	IsDefault  bool    `json:"isDefault"`
}

func toAddressResponse(a *address.Address) addressResponse {
	return addressResponse{
		ID:         a.ID.String(),
		Type:       a.Type,
		FullName:   a.FullName,
		Phone:      a.Phone,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
	}
}

func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.addresses.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]addressResponse, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, toAddressResponse(a))
	}
	respondOK(c, out)
}

type addressRequest struct {
	Type       string  `json:"type"`
	FullName   string  `json:"fullName" binding:"required"`
	Phone      string  `json:"phone" binding:"required"`
	Line1      string  `json:"line1" binding:"required"`
	Line2      *string `json:"line2"`
	City       string  `json:"city" binding:"required"`
	State      string  `json:"state" binding:"required"`
	PostalCode string  `json:"postalCode" binding:"required"`
	Country    string  `json:"country"`
	IsDefault  bool    `json:"isDefault"`
}

func (h *AddressHandler) Create(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	a, err := h.addresses.Create(c.Request.Context(), address.CreateAddressInput{
		Type:         req.Type,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.Line1,
		AddressLine2: req.Line2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		SetAsDefault: req.IsDefault,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, toAddressResponse(a))
}

func (h *AddressHandler) Update(c *gin.Context) {
	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid address id")
		return
	}
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	a, err := h.addresses.Update(c.Request.Context(), address.UpdateAddressInput{
		AddressID:    addressID,
		Type:         req.Type,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.Line1,
		AddressLine2: req.Line2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		SetAsDefault: req.IsDefault,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toAddressResponse(a))
}

func (h *AddressHandler) Delete(c *gin.Context) {
	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid address id")
		return
	}
	if err := h.addresses.Delete(c.Request.Context(), addressID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

func (h *AddressHandler) SetDefault(c *gin.Context) {
	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid address id")
		return
	}
	if err := h.addresses.SetDefaultAddress(c.Request.Context(), addressID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"default": true})
}
