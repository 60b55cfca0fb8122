// Пакет rest - HTTP-поверхность киоска: страницы клиента как обработчики gin.
package rest

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/foodorder/internal/navigation"
	"github.com/Gunvolt24/foodorder/internal/notify"
	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/Gunvolt24/foodorder/internal/usecase"
	"github.com/Gunvolt24/foodorder/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Handler - обработчики страниц киоска.
type Handler struct {
	service *usecase.Service
	toasts  *notify.Toaster
	log     ports.Logger
	timeout time.Duration
}

// NewHandler - timeout ограничивает один запрос вместе с вызовами удалённого API.
func NewHandler(service *usecase.Service, toasts *notify.Toaster, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, toasts: toasts, log: log, timeout: timeout}
}

// NewRouter - otelServiceName пустой, если трейсинг выключен.
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/busy", h.busy)
	r.GET("/toasts", h.drainToasts)

	pages := r.Group("/", h.withTimeout(), h.navigate())

	pages.GET("/login", h.loginPage)
	pages.POST("/login", h.login)
	pages.GET("/signup", h.signupPage)
	pages.POST("/signup", h.signup)
	pages.POST("/logout", h.logout)

	user := pages.Group("/")
	user.GET("/user-home", h.admit("/user-home"), h.userHome)
	cart := user.Group("/cart", h.admit("/cart"))
	cart.GET("", h.cartPage)
	cart.POST("/items", h.addToCart)
	cart.DELETE("/items/:id", h.removeFromCart)
	cart.DELETE("", h.clearCart)
	cart.POST("/order", h.placeOrder)

	pages.GET("/admin-home", h.admit("/admin-home"), h.adminHome)

	users := pages.Group("/admin/users", h.admit("/admin/users"))
	users.GET("", h.listUsers)
	users.DELETE("/:id", h.deleteUser)

	menu := pages.Group("/admin/menu-items", h.admit("/admin/menu-items"))
	menu.GET("", h.listMenu)
	menu.POST("", h.createMenuItem)
	menu.DELETE("/:id", h.deleteMenuItem)

	orders := pages.Group("/admin/orders", h.admit("/admin/orders"))
	orders.GET("", h.listOrders)
	orders.DELETE("/:id", h.deleteOrder)

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

// withTimeout - дедлайн на обработку запроса.
func (h *Handler) withTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// navigate - даёт странице Location; если страница никуда не ушла и ничего
// не записала, записанный переход становится 303.
func (h *Handler) navigate() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, loc := navigation.WithLocation(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if target, ok := loc.Target(); ok && !c.Writer.Written() {
			c.Redirect(http.StatusSeeOther, target)
		}
	}
}

// admit - допуск на страницу по роли; при отказе - редирект на логин.
func (h *Handler) admit(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.service.Admit(c.Request.Context(), page) {
			c.Next()
			return
		}
		c.Abort()
		if target, ok := redirectTarget(c); ok {
			c.Redirect(http.StatusSeeOther, target)
			return
		}
		c.AbortWithStatus(http.StatusForbidden)
	}
}

func redirectTarget(c *gin.Context) (string, bool) {
	loc, ok := navigation.LocationFromContext(c.Request.Context())
	if !ok {
		return "", false
	}
	return loc.Target()
}
