package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/senura-medagoda/UniMate-sub005/internal/analytics"
	"github.com/senura-medagoda/UniMate-sub005/internal/dto"
	"github.com/senura-medagoda/UniMate-sub005/internal/middleware"
	"github.com/senura-medagoda/UniMate-sub005/internal/model"
	"github.com/senura-medagoda/UniMate-sub005/internal/query"
	"github.com/senura-medagoda/UniMate-sub005/internal/repository"
	"github.com/senura-medagoda/UniMate-sub005/internal/service"
)

const dateLayout = "2006-01-02"

type OrderController struct {
	Orders     *service.OrderService
	Tracker    *service.TrackerService
	Summarizer *analytics.CachedSummarizer

	// storageTimeout bounds every request's trip to the store.
	storageTimeout time.Duration
}

func NewOrderController(orders *service.OrderService, tracker *service.TrackerService, summarizer *analytics.CachedSummarizer, storageTimeout time.Duration) *OrderController {
	return &OrderController{
		Orders:         orders,
		Tracker:        tracker,
		Summarizer:     summarizer,
		storageTimeout: storageTimeout,
	}
}

func (ctl *OrderController) withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), ctl.storageTimeout)
}

// POST /orders — order placement. Left open for manual testing;
// production traffic arrives via the order_placed queue.
func (ctl *OrderController) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := ctl.withTimeout(c)
	defer cancel()

	ord, err := ctl.Orders.Create(ctx, service.PlaceOrderInput{
		OrderID:       req.OrderID,
		Items:         dto.ItemsToModel(req.Items),
		Customer:      req.Customer.ToModel(),
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, ord)
}

// GET /orders/:orderId — requires token
func (ctl *OrderController) GetOrder(c *gin.Context) {
	ctx, cancel := ctl.withTimeout(c)
	defer cancel()

	ord, err := ctl.Orders.GetByID(ctx, c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

// PATCH /orders/:orderId/status — requires token
func (ctl *OrderController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := ctl.withTimeout(c)
	defer cancel()

	err := ctl.Orders.Transition(ctx, middleware.PrincipalFrom(c), c.Param("orderId"), model.Status(req.Status))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

// POST /orders/:orderId/location — requires token
func (ctl *OrderController) RecordLocation(c *gin.Context) {
	var req dto.RecordLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := ctl.withTimeout(c)
	defer cancel()

	err := ctl.Tracker.RecordLocation(ctx, middleware.PrincipalFrom(c), c.Param("orderId"), req.Lat, req.Lng, req.ObservedAt)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "location recorded"})
}

// GET /orders/:orderId/staleness — requires token
func (ctl *OrderController) GetStaleness(c *gin.Context) {
	ctx, cancel := ctl.withTimeout(c)
	defer cancel()

	orderID := c.Param("orderId")
	age, known, err := ctl.Tracker.Staleness(ctx, orderID)
	if err != nil {
		fail(c, err)
		return
	}

	resp := dto.StalenessResponse{Tracked: known}
	if known {
		secs := age.Seconds()
		resp.AgeSeconds = &secs
		resp.LastLocation, err = ctl.Tracker.LastLocation(ctx, orderID)
		if err != nil {
			fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GET /admin/orders - admin only; filter dimensions arrive as query params.
func (ctl *OrderController) ListOrders(c *gin.Context) {
	ctx, cancel := ctl.withTimeout(c)
	defer cancel()

	orders, err := ctl.Orders.GetAll(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	criteria := query.Criteria{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   model.Status(c.Query("status")),
		Preset:   query.DatePreset(c.Query("dateFilter")),
	}
	if criteria.From, err = parseDate(c.Query("from")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	if criteria.To, err = parseDate(c.Query("to")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}

	out, err := query.Filter(orders, criteria)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /admin/orders/page - admin only, cursor paged
func (ctl *OrderController) ListOrdersPage(c *gin.Context) {
	ctx, cancel := ctl.withTimeout(c)
	defer cancel()

	limit, _ := strconv.Atoi(c.Query("limit"))
	page, err := ctl.Orders.GetPage(ctx, c.Query("cursor"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /admin/analytics/summary - admin only
func (ctl *OrderController) GetSummary(c *gin.Context) {
	ctx, cancel := ctl.withTimeout(c)
	defer cancel()

	var w analytics.Window
	var err error
	if w.From, err = parseDate(c.Query("from")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	if w.To, err = parseDate(c.Query("to")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}

	summary, err := ctl.Summarizer.Summarize(ctx, w)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DELETE /admin/orders/:orderId - admin only; delivered orders only.
func (ctl *OrderController) DeleteOrder(c *gin.Context) {
	ctx, cancel := ctl.withTimeout(c)
	defer cancel()

	err := ctl.Orders.Delete(ctx, middleware.PrincipalFrom(c), c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// fail maps error kinds to HTTP codes; the core returns structured kinds,
// never user-facing copy.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, repository.ErrInvalidState),
		errors.Is(err, repository.ErrAlreadyExists),
		errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrStaleUpdate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "storage timeout"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
