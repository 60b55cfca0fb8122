package rest

import (
	"errors"
	"net/http"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/notify"
	"github.com/Gunvolt24/foodorder/internal/session"
	"github.com/Gunvolt24/foodorder/internal/usecase"
	"github.com/Gunvolt24/foodorder/pkg/validate"
	"github.com/gin-gonic/gin"
)

// pageView - то, что киоск рисует на любой странице: навигационная панель,
// индикатор занятости, уведомления и данные самой страницы.
type pageView struct {
	Page      string         `json:"page"`
	Role      string         `json:"role,omitempty"`
	Home      string         `json:"home"`
	CartBadge int            `json:"cartBadge"`
	Busy      bool           `json:"busy"`
	Data      any            `json:"data,omitempty"`
	Toasts    []notify.Toast `json:"toasts"`
}

type cartView struct {
	Lines []domain.CartLine `json:"lines"`
	Total float64           `json:"total"`
}

// listView - страница списка; Total - длина всего списка.
type listView[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

type credentialsForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type signupForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
	Role     string `form:"role" json:"role"`
}

type addToCartForm struct {
	ItemID string `form:"itemId" json:"itemId" binding:"required"`
}

type menuItemForm struct {
	Name         string  `form:"name" json:"name"`
	Category     string  `form:"category" json:"category"`
	Price        float64 `form:"price" json:"price"`
	Availability *bool   `form:"availability" json:"availability"`
}

func (f menuItemForm) item() domain.MenuItem {
	available := true
	if f.Availability != nil {
		available = *f.Availability
	}
	return domain.MenuItem{Name: f.Name, Category: f.Category, Price: f.Price, Availability: available}
}

// render - если сценарий записал переход, отвечаем 303, иначе страницей.
func (h *Handler) render(c *gin.Context, status int, page string, data any) {
	if target, ok := redirectTarget(c); ok {
		c.Redirect(http.StatusSeeOther, target)
		return
	}
	role := h.service.Role()
	c.JSON(status, pageView{
		Page:      page,
		Role:      role.String(),
		Home:      h.service.HomePath(),
		CartBadge: h.service.CartBadge(),
		Busy:      h.service.Busy(),
		Data:      data,
		Toasts:    h.toasts.Drain(),
	})
}

// statusOf - HTTP-статус страницы после неудачного сценария.
func statusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrEmptyCart),
		errors.Is(err, usecase.ErrItemUnavailable),
		errors.Is(err, validate.ErrInvalidMenuItem):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrOperationFailed), errors.Is(err, session.ErrInvalidSession):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
