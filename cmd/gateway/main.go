package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seyman123/dreamshops-client/internal/cache"
	"github.com/seyman123/dreamshops-client/internal/cart"
	"github.com/seyman123/dreamshops-client/internal/catalog"
	"github.com/seyman123/dreamshops-client/internal/checkout"
	"github.com/seyman123/dreamshops-client/internal/coupon"
	"github.com/seyman123/dreamshops-client/internal/gateway"
	"github.com/seyman123/dreamshops-client/internal/notify"
	"github.com/seyman123/dreamshops-client/internal/price"
	"github.com/seyman123/dreamshops-client/internal/remote"
	"github.com/seyman123/dreamshops-client/internal/session"
	"github.com/seyman123/dreamshops-client/internal/telemetry"
)

type Config struct {
	HTTPPort        string
	APIBaseURL      string
	RedisAddr       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	PageSize        int
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:9090/api/v1"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		PageSize:        12,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	telemetry.InitLogger()

	ctx := context.Background()
	shutdownTracer, err := telemetry.SetupTracer(ctx, "dreamshops-gateway")
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer shutdownTracer(context.Background())
	}

	tokens := remote.NewMemoryTokenStore()
	notifier := notify.NewLogNotifier(slog.Default())
	sess := session.New(tokens, notifier)

	client := remote.NewClient(
		cfg.APIBaseURL,
		tokens,
		remote.WithAuthFailureHook(sess.Logout),
	)

	var store cache.Store
	if cfg.RedisAddr != "" {
		store = cache.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), "dreamshops")
	} else {
		store = cache.NewMemoryStore()
	}

	handles := cart.NewHandleResolver(client, store)
	cartSvc := cart.NewService(client, handles, sess)
	couponSvc := coupon.NewService(client, notifier, price.Format)
	checkoutSvc := checkout.NewService(client, cartSvc, couponSvc, notifier)
	pipeline := catalog.NewPipeline(client, client, cfg.PageSize)

	handlers := gateway.Handlers{
		Cart:      gateway.NewCartHandler(cartSvc, couponSvc, sess),
		Coupons:   gateway.NewCouponHandler(couponSvc, cartSvc),
		Checkout:  gateway.NewCheckoutHandler(checkoutSvc, cartSvc, couponSvc, sess),
		Products:  gateway.NewProductHandler(pipeline),
		Orders:    gateway.NewOrdersHandler(client, sess),
		Favorites: gateway.NewFavoritesHandler(client, sess),
		Admin:     gateway.NewAdminHandler(client),
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      gateway.NewRouter(sess, handlers, cfg.RequestTimeout),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("storefront gateway starting", "port", cfg.HTTPPort, "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	slog.Info("server exited")
}
