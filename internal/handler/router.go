package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"wellness-booking/internal/handler/api"
	"wellness-booking/internal/handler/middleware"
	"wellness-booking/internal/pkg/config"
	"wellness-booking/internal/pkg/jwt"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Cart     *api.CartHandler
	Checkout *api.CheckoutHandler
	Booking  *api.BookingHandler
}

// Observability bundles the request observer and the registry scraped at /metrics.
type Observability struct {
	Observer middleware.RequestObserver
	Gatherer prometheus.Gatherer
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter, obs Observability) {
	setupMiddleware(engine, cfg, obs)
	setupRoutes(engine, cfg, h, authMiddleware, limiter, obs)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, obs Observability) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	if obs.Observer != nil {
		engine.Use(middleware.Metrics(obs.Observer))
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter, obs Observability) {
	engine.GET("/health", healthCheck)

	if cfg.Metrics.Enabled && obs.Gatherer != nil {
		engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(obs.Gatherer, promhttp.HandlerOpts{})))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	throttle := []gin.HandlerFunc{limiter.Middleware()}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		session := apiGroup.Group("")
		session.Use(middleware.RequireCheckoutSession())

		addRoutes(session, []route{
			{Method: http.MethodGet, Path: "/cart", Handler: h.Cart.List},
			{Method: http.MethodPost, Path: "/cart/items", Handler: h.Cart.AddItem, Mw: throttle},
			{Method: http.MethodDelete, Path: "/cart/items/:id", Handler: h.Cart.RemoveItem},
			{Method: http.MethodPost, Path: "/cart/checkout", Handler: h.Cart.Checkout, Mw: throttle},
			{Method: http.MethodPost, Path: "/book-now", Handler: h.Cart.BookNow, Mw: throttle},
		})

		addRoutes(session, []route{
			{Method: http.MethodGet, Path: "/checkout", Handler: h.Checkout.Get},
			{Method: http.MethodGet, Path: "/checkout/quote", Handler: h.Checkout.Quote},
			{Method: http.MethodPost, Path: "/checkout/restore", Handler: h.Checkout.Restore},
			{Method: http.MethodPut, Path: "/checkout/services", Handler: h.Checkout.ToggleService},
			{Method: http.MethodPut, Path: "/checkout/voucher", Handler: h.Checkout.ApplyVoucher, Mw: throttle},
			{Method: http.MethodDelete, Path: "/checkout/voucher", Handler: h.Checkout.RemoveVoucher},
			{Method: http.MethodPut, Path: "/checkout/contact", Handler: h.Checkout.SetContact},
			{Method: http.MethodPost, Path: "/checkout/redemption", Handler: h.Checkout.ProposeRedeem, Mw: throttle},
			{Method: http.MethodPost, Path: "/checkout/redemption/:ticket/confirm", Handler: h.Checkout.ConfirmRedeem, Mw: throttle},
			{Method: http.MethodDelete, Path: "/checkout/redemption/:ticket", Handler: h.Checkout.CancelRedeem},
			{Method: http.MethodDelete, Path: "/checkout/redemption", Handler: h.Checkout.UndoRedeem},
			{Method: http.MethodPost, Path: "/checkout/proceed", Handler: h.Checkout.ProceedToPayment},
			{Method: http.MethodPost, Path: "/checkout/leave", Handler: h.Checkout.Leave},
			{Method: http.MethodPost, Path: "/checkout/abandon", Handler: h.Checkout.Abandon},
			{Method: http.MethodPost, Path: "/checkout/commit", Handler: h.Checkout.Commit, Mw: throttle},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/loyalty", Handler: h.Checkout.Loyalty},
			{Method: http.MethodGet, Path: "/bookings", Handler: h.Booking.List},
			{Method: http.MethodGet, Path: "/bookings/:id", Handler: h.Booking.Get},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireRoleAtLeast(jwt.RoleStaff))
		addRoutes(admin, []route{
			{Method: http.MethodPatch, Path: "/bookings/:id/status", Handler: h.Booking.TransitionStatus},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
