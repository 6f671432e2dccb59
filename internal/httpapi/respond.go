package httpapi

import (
	"errors"
	"net/http"

	"vastra-be/internal/address"
	"vastra-be/internal/admin"
	"vastra-be/internal/cart"
	"vastra-be/internal/category"
	"vastra-be/internal/logger"
	"vastra-be/internal/order"
	"vastra-be/internal/product"
	"vastra-be/internal/shop"
	"vastra-be/internal/user"
	"vastra-be/internal/wishlist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// respondError translates domain errors into HTTP status codes. Unmapped
// errors become an opaque 500 so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, shop.ErrShopAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, user.ErrProfileNotFound),
		errors.Is(err, address.ErrNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, shop.ErrShopNotFound),
		errors.Is(err, wishlist.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrAddressNotFound):
		status = http.StatusNotFound
	case errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrNameRequired),
		errors.Is(err, shop.ErrNameRequired),
		errors.Is(err, shop.ErrInvalidCoordinate),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, order.ErrMissingIdempotencyKey),
		errors.Is(err, order.ErrCartEmpty):
		status = http.StatusBadRequest
	case errors.Is(err, order.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, product.ErrNotShopOwner),
		errors.Is(err, admin.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, address.ErrUnauthenticated),
		errors.Is(err, cart.ErrUserNotAuthenticated),
		errors.Is(err, wishlist.ErrUnauthenticated),
		errors.Is(err, shop.ErrUnauthenticated),
		errors.Is(err, order.ErrUserNotAuthenticated):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("unhandled error", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
