package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"evergrain-service/internal/cart"
	"evergrain-service/internal/catalog"
	"evergrain-service/internal/clients"
	"evergrain-service/internal/events"
	"evergrain-service/internal/models"
)

type CheckoutHandler struct {
	carts     *cart.Aggregator
	catalog   *catalog.Catalog
	emails    *clients.EmailClient
	publisher *events.Publisher
}

func NewCheckoutHandler(carts *cart.Aggregator, cat *catalog.Catalog, emails *clients.EmailClient, publisher *events.Publisher) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, catalog: cat, emails: emails, publisher: publisher}
}

// Checkout dispatches the order by email. Dispatch failures surface verbatim
// with no retry — the customer resubmits. On success the cart is cleared.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("VALIDATION_ERROR", err.Error()))
		return
	}

	items := h.carts.Get(c.Request.Context(), req.CartID)
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("EMPTY_CART", "Cart is empty"))
		return
	}

	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		title := models.DefaultTitle
		if product, ok := h.catalog.Lookup(item.ID); ok {
			title = models.ResolveTitle(&product, models.LangEN)
		}
		lines = append(lines, models.OrderLine{
			ID:        item.ID,
			Title:     title,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.LineTotal(),
		})
	}

	// Orders currently ship free; the governorate is carried for the owner's
	// own delivery arrangements.
	subtotal := cart.Total(items)
	order := &models.Order{
		ID:               uuid.New().String(),
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		CustomerLocation: req.CustomerLocation,
		Governorate:      req.Governorate,
		Items:            lines,
		Subtotal:         subtotal,
		Shipping:         0,
		Total:            subtotal,
		CreatedAt:        time.Now().UTC(),
	}

	if err := h.emails.SendOrderEmail(c.Request.Context(), order); err != nil {
		c.JSON(http.StatusBadGateway, models.NewErrorResponse("EMAIL_DISPATCH_FAILED", err.Error()))
		return
	}

	h.carts.Clear(c.Request.Context(), req.CartID)
	h.publisher.PublishOrderPlaced(order.ID)

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: order})
}

// Contact dispatches a contact-form message by email; failures surface
// verbatim, same as checkout.
func (h *CheckoutHandler) Contact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("VALIDATION_ERROR", err.Error()))
		return
	}

	if err := h.emails.SendContactEmail(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusBadGateway, models.NewErrorResponse("EMAIL_DISPATCH_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Message sent"})
}

// ShippingQuote returns the shipping cost for a governorate.
func (h *CheckoutHandler) ShippingQuote(c *gin.Context) {
	governorate := c.Query("governorate")
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data: gin.H{
			"governorate": governorate,
			"shipping":    models.ShippingByGovernorate(governorate),
		},
	})
}
