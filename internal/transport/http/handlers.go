package rest

import (
	"net/http"
	"strconv"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// Размер страницы админских списков.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (h *Handler) busy(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"busy": h.service.Busy()})
}

func (h *Handler) drainToasts(c *gin.Context) {
	c.JSON(http.StatusOK, h.toasts.Drain())
}

func (h *Handler) loginPage(c *gin.Context) {
	h.service.EnterLogin(c.Request.Context())
	h.render(c, http.StatusOK, "login", nil)
}

func (h *Handler) login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	err := h.service.Login(c.Request.Context(), domain.Credentials{Username: form.Username, Password: form.Password})
	if err != nil {
		h.render(c, http.StatusUnauthorized, "login", nil)
		return
	}
	h.render(c, http.StatusOK, "login", nil)
}

func (h *Handler) signupPage(c *gin.Context) {
	h.render(c, http.StatusOK, "signup", nil)
}

func (h *Handler) signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	err := h.service.Signup(c.Request.Context(), domain.Registration{
		Username: form.Username,
		Password: form.Password,
		Role:     form.Role,
	})
	h.render(c, statusOf(err), "signup", nil)
}

func (h *Handler) logout(c *gin.Context) {
	h.service.Logout(c.Request.Context())
	h.render(c, http.StatusOK, "login", nil)
}

func (h *Handler) userHome(c *gin.Context) {
	items, err := h.service.Menu(c.Request.Context())
	if items == nil {
		items = []domain.MenuItem{}
	}
	h.render(c, statusOf(err), "user-home", items)
}

func (h *Handler) cartPage(c *gin.Context) {
	h.render(c, http.StatusOK, "cart", h.cartView())
}

func (h *Handler) addToCart(c *gin.Context) {
	var form addToCartForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemId is required"})
		return
	}
	err := h.service.AddToCart(c.Request.Context(), form.ItemID)
	h.render(c, statusOf(err), "cart", h.cartView())
}

// removeFromCart - ?amount=N уменьшает количество, amount=0 удаляет строку; по умолчанию 1.
func (h *Handler) removeFromCart(c *gin.Context) {
	amount, err := strconv.Atoi(c.DefaultQuery("amount", "1"))
	if err != nil || amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	if !h.service.RemoveFromCart(c.Request.Context(), c.Param("id"), amount) {
		h.render(c, http.StatusNotFound, "cart", h.cartView())
		return
	}
	h.render(c, http.StatusOK, "cart", h.cartView())
}

func (h *Handler) clearCart(c *gin.Context) {
	h.service.ClearCart(c.Request.Context())
	h.render(c, http.StatusOK, "cart", h.cartView())
}

func (h *Handler) placeOrder(c *gin.Context) {
	err := h.service.PlaceOrder(c.Request.Context())
	h.render(c, statusOf(err), "cart", h.cartView())
}

func (h *Handler) adminHome(c *gin.Context) {
	h.render(c, http.StatusOK, "admin-home", nil)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	limit, offset := httpx.ParseLimitOffset(c, defaultPageSize, maxPageSize)
	lo, hi := httpx.Window(len(users), limit, offset)
	h.render(c, statusOf(err), "admin/users", listView[domain.User]{Items: append([]domain.User{}, users[lo:hi]...), Total: len(users)})
}

func (h *Handler) deleteUser(c *gin.Context) {
	err := h.service.DeleteUser(c.Request.Context(), c.Param("id"))
	h.render(c, statusOf(err), "admin/users", nil)
}

func (h *Handler) listMenu(c *gin.Context) {
	items, err := h.service.Menu(c.Request.Context())
	if items == nil {
		items = []domain.MenuItem{}
	}
	h.render(c, statusOf(err), "admin/menu-items", items)
}

func (h *Handler) createMenuItem(c *gin.Context) {
	var form menuItemForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item"})
		return
	}
	created, err := h.service.CreateMenuItem(c.Request.Context(), form.item())
	status := statusOf(err)
	if err == nil {
		status = http.StatusCreated
	}
	h.render(c, status, "admin/menu-items", created)
}

func (h *Handler) deleteMenuItem(c *gin.Context) {
	err := h.service.DeleteMenuItem(c.Request.Context(), c.Param("id"))
	h.render(c, statusOf(err), "admin/menu-items", nil)
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	limit, offset := httpx.ParseLimitOffset(c, defaultPageSize, maxPageSize)
	lo, hi := httpx.Window(len(orders), limit, offset)
	h.render(c, statusOf(err), "admin/orders", listView[domain.Order]{Items: append([]domain.Order{}, orders[lo:hi]...), Total: len(orders)})
}

func (h *Handler) deleteOrder(c *gin.Context) {
	err := h.service.DeleteOrder(c.Request.Context(), c.Param("id"))
	h.render(c, statusOf(err), "admin/orders", nil)
}

func (h *Handler) cartView() cartView {
	lines, total := h.service.Cart()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartView{Lines: lines, Total: total}
}
