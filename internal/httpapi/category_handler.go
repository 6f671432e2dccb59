package httpapi

import (
	"vastra-be/internal/category"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories category.Service
}

type categoryResponse struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Slug     string             `json:"slug"`
	ImageURL *string            `json:"imageUrl,omitempty"`
	Children []categoryResponse `json:"children,omitempty"`
}

func toCategoryResponse(c *category.Category) categoryResponse {
	out := categoryResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Slug:     c.Slug,
		ImageURL: c.ImageURL,
	}
	for _, child := range c.Children {
		out.Children = append(out.Children, toCategoryResponse(child))
	}
	return out
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, toCategoryResponse(cat))
	}
	respondOK(c, out)
}

func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	cat, err := h.categories.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toCategoryResponse(cat))
}
