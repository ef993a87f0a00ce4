package gateway

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/seyman123/dreamshops-client/internal/session"
)

type Handlers struct {
	Cart      *CartHandler
	Coupons   *CouponHandler
	Checkout  *CheckoutHandler
	Products  *ProductHandler
	Orders    *OrdersHandler
	Favorites *FavoritesHandler
	Admin     *AdminHandler
}

// NewRouter assembles the storefront API surface.
func NewRouter(sess *session.Context, h Handlers, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware(sess))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.Products.List)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Get("/count", h.Cart.Badge)
			r.Delete("/", h.Cart.Clear)
			r.Put("/items/{item_id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{item_id}", h.Cart.RemoveItem)
			r.Post("/coupon", h.Coupons.Apply)
			r.Delete("/coupon", h.Coupons.Remove)
		})

		r.Post("/checkout", h.Checkout.Checkout)
		r.Get("/orders", h.Orders.List)

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.Favorites.List)
			r.Post("/{product_id}", h.Favorites.Add)
			r.Delete("/{product_id}", h.Favorites.Remove)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/products", h.Admin.CreateProduct)
			r.Put("/products/{product_id}", h.Admin.UpdateProduct)
			r.Delete("/products/{product_id}", h.Admin.DeleteProduct)
			r.Post("/coupons", h.Admin.CreateCoupon)
			r.Delete("/coupons/{coupon_id}", h.Admin.DeleteCoupon)
		})
	})

	return otelhttp.NewHandler(r, "gateway")
}
