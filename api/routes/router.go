package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/unieats/unieats-backend/api/controllers"
	"github.com/unieats/unieats-backend/api/middleware"
	"github.com/unieats/unieats-backend/internal/cart"
	"github.com/unieats/unieats-backend/internal/catalog"
	checkoutsvc "github.com/unieats/unieats-backend/internal/checkout"
	"github.com/unieats/unieats-backend/internal/notifications"
	"github.com/unieats/unieats-backend/internal/orders"
	"github.com/unieats/unieats-backend/pkg/config"
	"github.com/unieats/unieats-backend/pkg/db"
	"github.com/unieats/unieats-backend/pkg/enums"
	"github.com/unieats/unieats-backend/pkg/logger"
	"github.com/unieats/unieats-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	keeper *cart.Keeper,
	catalogService catalog.Service,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
	notificationsService notifications.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	checkoutPolicy := middleware.NewRateLimitPolicy(
		"checkout",
		cfg.RateLimit.CheckoutWindow,
		cfg.RateLimit.CheckoutIPLimit,
		cfg.RateLimit.CheckoutUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbClient, redisClient, logg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/v1/restaurants", func(r chi.Router) {
			r.Get("/", controllers.ListRestaurants(catalogService, logg))
			r.Get("/{restaurantId}/menu", controllers.RestaurantMenu(catalogService, logg))
			r.Get("/{restaurantId}/dishes/{dishId}", controllers.DishDetail(catalogService, logg))
		})

		r.Route("/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(keeper, logg))
			r.Delete("/", controllers.ClearCart(keeper, logg))
			r.Post("/items", controllers.AddCartItem(keeper, catalogService, cfg.Cart, logg))
			r.Patch("/items/{lineItemId}", controllers.UpdateCartItem(keeper, logg))
			r.Delete("/items/{lineItemId}", controllers.RemoveCartItem(keeper, logg))
		})

		r.With(middleware.RateLimit(checkoutPolicy, redisClient, logg)).
			Post("/v1/checkout", controllers.Checkout(checkoutService, keeper, logg))

		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.ListMyOrders(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
		})

		r.Route("/v1/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(notificationsService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationsService, logg))
		})

		r.Route("/v1/owner", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.MemberRoleOwner), logg))
			r.Use(middleware.RequireRestaurantScope(logg))
			r.Get("/orders", controllers.OwnerOrderQueue(ordersService, logg))
			r.Post("/orders/{orderId}/status", controllers.OwnerOrderStatus(ordersService, logg))
			r.Put("/dishes/{dishId}/availability", controllers.OwnerDishAvailability(catalogService, logg))
		})
	})

	return r
}
