package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"evergrain-service/internal/cart"
	"evergrain-service/internal/catalog"
	"evergrain-service/internal/models"
)

type CartHandler struct {
	carts   *cart.Aggregator
	catalog *catalog.Catalog
}

func NewCartHandler(carts *cart.Aggregator, cat *catalog.Catalog) *CartHandler {
	return &CartHandler{carts: carts, catalog: cat}
}

// cartSummary is the response shape for every cart operation.
type cartSummary struct {
	CartID string            `json:"cartId"`
	Items  []models.CartItem `json:"items"`
	Total  float64           `json:"total"`
	Count  int               `json:"count"`
}

func summarize(cartID string, items []models.CartItem) cartSummary {
	return cartSummary{
		CartID: cartID,
		Items:  items,
		Total:  cart.Total(items),
		Count:  cart.Count(items),
	}
}

// CreateCart issues a fresh cart id. Carts are anonymous; the id is the only
// handle.
func (h *CartHandler) CreateCart(c *gin.Context) {
	cartID := uuid.New().String()
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    summarize(cartID, []models.CartItem{}),
	})
}

// GetCart returns the cart's line items with total and count. Unknown ids
// yield an empty cart, never an error.
func (h *CartHandler) GetCart(c *gin.Context) {
	cartID := c.Param("cartId")
	items := h.carts.Get(c.Request.Context(), cartID)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: summarize(cartID, items)})
}

type addItemRequest struct {
	ProductID int `json:"productId" binding:"required"`
}

// AddItem adds one unit of a product, snapshotting its price at add-time.
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID := c.Param("cartId")

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("VALIDATION_ERROR", err.Error()))
		return
	}

	product, ok := h.catalog.Lookup(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, models.NewErrorResponse("NOT_FOUND", fmt.Sprintf("Product %d not found", req.ProductID)))
		return
	}

	items := h.carts.AddItem(c.Request.Context(), cartID, &product)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: summarize(cartID, items)})
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetQuantity updates a line's quantity; zero or negative removes the line.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	cartID := c.Param("cartId")
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("INVALID_ID", "Product id must be an integer"))
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("VALIDATION_ERROR", err.Error()))
		return
	}

	items := h.carts.SetQuantity(c.Request.Context(), cartID, productID, req.Quantity)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: summarize(cartID, items)})
}

// RemoveItem deletes a line item.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID := c.Param("cartId")
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("INVALID_ID", "Product id must be an integer"))
		return
	}

	items := h.carts.RemoveItem(c.Request.Context(), cartID, productID)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: summarize(cartID, items)})
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	cartID := c.Param("cartId")
	h.carts.Clear(c.Request.Context(), cartID)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: summarize(cartID, []models.CartItem{})})
}
