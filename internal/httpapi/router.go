package httpapi

import (
	"net/http"
	"time"

	"vastra-be/internal/address"
	"vastra-be/internal/admin"
	"vastra-be/internal/cart"
	"vastra-be/internal/category"
	"vastra-be/internal/metrics"
	"vastra-be/internal/middleware"
	"vastra-be/internal/order"
	"vastra-be/internal/product"
	"vastra-be/internal/shop"
	"vastra-be/internal/user"
	"vastra-be/internal/wishlist"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries every service the HTTP layer fronts.
type Deps struct {
	Users      user.Service
	Addresses  address.Service
	Products   product.Service
	Categories category.Service
	Shops      shop.Service
	Carts      cart.Service
	Wishlists  wishlist.Service
	Orders     order.Service
	Admin      admin.Service
	Metrics    *metrics.Metrics
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.Use(middleware.Authenticate())
	r.Use(middleware.RateLimit())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	authH := &AuthHandler{users: deps.Users}
	productH := &ProductHandler{products: deps.Products}
	categoryH := &CategoryHandler{categories: deps.Categories}
	shopH := &ShopHandler{shops: deps.Shops}
	cartH := &CartHandler{carts: deps.Carts}
	wishlistH := &WishlistHandler{wishlists: deps.Wishlists}
	addressH := &AddressHandler{addresses: deps.Addresses}
	orderH := &OrderHandler{orders: deps.Orders, shops: deps.Shops, metrics: deps.Metrics}
	adminH := &AdminHandler{admin: deps.Admin}

	api := r.Group("/api")
	{
		api.POST("/auth/register", authH.Register)
		api.POST("/auth/login", authH.Login)

		api.GET("/products", productH.Search)
		api.GET("/products/featured", productH.Featured)
		api.GET("/products/trending", productH.Trending)
		api.GET("/products/:slug", productH.GetBySlug)
		api.GET("/brands", productH.Brands)

		api.GET("/categories", categoryH.List)
		api.GET("/categories/:slug", categoryH.GetBySlug)

		api.GET("/shops", shopH.List)
		api.GET("/shops/nearby", shopH.Nearby)
		api.GET("/shops/:slug", shopH.GetBySlug)
	}

	authed := api.Group("", middleware.RequireAuth())
	{
		authed.GET("/me", authH.Profile)
		authed.PUT("/me", authH.UpdateProfile)

		authed.GET("/cart", cartH.List)
		authed.POST("/cart/items", cartH.Add)
		authed.PATCH("/cart/items/:id", cartH.UpdateQuantity)
		authed.DELETE("/cart/items/:id", cartH.Remove)
		authed.DELETE("/cart", cartH.Clear)

		authed.GET("/wishlist", wishlistH.List)
		authed.GET("/wishlist/count", wishlistH.Count)
		authed.POST("/wishlist/toggle", wishlistH.Toggle)

		authed.GET("/addresses", addressH.List)
		authed.POST("/addresses", addressH.Create)
		authed.PUT("/addresses/:id", addressH.Update)
		authed.DELETE("/addresses/:id", addressH.Delete)
		authed.POST("/addresses/:id/default", addressH.SetDefault)

		authed.POST("/orders", orderH.Place)
		authed.GET("/orders", orderH.List)
		authed.GET("/orders/:id", orderH.Get)
		authed.POST("/orders/:id/cancel", orderH.Cancel)
	}

	seller := api.Group("/seller", middleware.RequireAuth(), middleware.RequireRole("seller"))
	{
		seller.POST("/shop", shopH.Register)
		seller.GET("/shop", shopH.MyShop)

		seller.GET("/products", productH.ListMine)
		seller.POST("/products", productH.Create)
		seller.PUT("/products/:id", productH.Update)
		seller.DELETE("/products/:id", productH.Delete)

		seller.GET("/orders", orderH.ListShopOrders)
		seller.PATCH("/orders/:id/status", orderH.UpdateStatus)
	}

	adminGroup := api.Group("/admin", middleware.RequireAuth(), middleware.RequireRole("admin"))
	{
		adminGroup.GET("/dashboard", adminH.Dashboard)
		adminGroup.GET("/orders/recent", adminH.RecentOrders)
		adminGroup.GET("/products/top", adminH.TopProducts)
	}

	return r
}
