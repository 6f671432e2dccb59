package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vastra-be/internal/address"
	"vastra-be/internal/admin"
	"vastra-be/internal/cart"
	"vastra-be/internal/category"
	"vastra-be/internal/config"
	"vastra-be/internal/db"
	"vastra-be/internal/httpapi"
	"vastra-be/internal/logger"
	"vastra-be/internal/metrics"
	"vastra-be/internal/order"
	"vastra-be/internal/product"
	"vastra-be/internal/shop"
	"vastra-be/internal/user"
	"vastra-be/internal/wishlist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	shopRepo := shop.NewRepository(database)
	shopSvc := shop.NewService(shopRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, shopSvc)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)

	wishlistRepo := wishlist.NewRepository(database)
	wishlistSvc := wishlist.NewService(wishlistRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, shopSvc, cfg.Checkout)

	adminRepo := admin.NewRepository(database)
	adminSvc := admin.NewService(adminRepo)

	m := metrics.New()

	router := httpapi.NewRouter(httpapi.Deps{
		Users:      userSvc,
		Addresses:  addressSvc,
		Products:   productSvc,
		Categories: categorySvc,
		Shops:      shopSvc,
		Carts:      cartSvc,
		Wishlists:  wishlistSvc,
		Orders:     orderSvc,
		Admin:      adminSvc,
		Metrics:    m,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
