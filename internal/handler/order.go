package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/atelier/discography-api/internal/audit"
	"github.com/atelier/discography-api/internal/logger"
	"github.com/atelier/discography-api/internal/middleware"
	"github.com/atelier/discography-api/internal/model"
	"github.com/atelier/discography-api/internal/repository"
	"github.com/atelier/discography-api/internal/service"
)

// OrderHandler serves order placement and retrieval.  Events may be nil in
// environments without a broker; publishing is then skipped.
type OrderHandler struct {
	Orders *repository.OrderRepo
	Trail  *audit.Trail
	Events service.EventPublisher
}

func NewOrderHandler(orders *repository.OrderRepo, trail *audit.Trail, events service.EventPublisher) *OrderHandler {
	return &OrderHandler{Orders: orders, Trail: trail, Events: events}
}

type createOrderReq struct {
	Items []repository.OrderItemInput `json:"items"`
}

// Create handles POST /v1/orders.  The cart is validated in full before any
// write; the total is always computed server-side from catalog prices.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized access"})
	}

	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No order items provided"})
	}

	order, err := h.Orders.Create(c.Request().Context(), userID, req.Items)
	switch err {
	case nil:
	case repository.ErrEmptyCart:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No order items provided"})
	case repository.ErrInvalidQuantity:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid item quantity"})
	case repository.ErrAlbumNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Album not found"})
	case repository.ErrAlbumNotForSale:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Album is not for sale"})
	default:
		logger.Log.Errorw("order create failed", "user_id", userID, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Order creation failed"})
	}

	h.Trail.OrderCreated(order.ID, order.UserID, len(order.Items), order.TotalAmount)
	if h.Events != nil {
		h.Events.OrderCreated(c.Request().Context(), order)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Order created successfully", "order": order})
}

// GetByID handles GET /v1/orders/:id.  Owners and admins see the order;
// everyone else gets a 403 regardless of whether the order exists, so ids
// cannot be probed.
func (h *OrderHandler) GetByID(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized access"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing order ID"})
	}

	order, err := h.Orders.GetByID(c.Request().Context(), id)
	if err == repository.ErrOrderNotFound {
		if middleware.IsAdmin(c) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Order not found"})
		}
		// Same denial as the foreign-owner case below.
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Unauthorized access to this order"})
	}
	if err != nil {
		logger.Log.Errorw("order lookup failed", "order_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve orders"})
	}
	if order.UserID != userID && !middleware.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Unauthorized access to this order"})
	}
	return c.JSON(http.StatusOK, order)
}

// ListMine handles GET /v1/orders and returns the caller's orders, newest
// first.
func (h *OrderHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized access"})
	}
	orders, err := h.Orders.ListByUser(c.Request().Context(), userID)
	if err != nil {
		logger.Log.Errorw("order list failed", "user_id", userID, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": orders})
}

// ListAll handles GET /v1/admin/orders and returns every order with the
// owner's email attached.
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.Orders.ListAll(c.Request().Context())
	if err != nil {
		logger.Log.Errorw("admin order list failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

type updateStatusReq struct {
	OrderID uint64 `json:"id"`
	Status  string `json:"status"`
}

// UpdateStatus handles PATCH /v1/orders/status.  Admin surface only; the
// status value is normalized (trimmed, lowercased) and must be one of the
// known lifecycle states.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	adminID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized access"})
	}

	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing required fields or invalid status"})
	}
	status, ok := model.NormalizeStatus(req.Status)
	if req.OrderID == 0 || !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing required fields or invalid status"})
	}

	order, err := h.Orders.UpdateStatus(c.Request().Context(), req.OrderID, status)
	if err == repository.ErrOrderNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Order not found"})
	}
	if err != nil {
		logger.Log.Errorw("order status update failed", "order_id", req.OrderID, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Order status update failed"})
	}

	h.Trail.StatusUpdated(order.ID, order.Status, adminID)
	return c.JSON(http.StatusOK, echo.Map{"message": "Order status updated successfully", "order": order})
}
