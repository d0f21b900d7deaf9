package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"evergrain-service/internal/catalog"
	"evergrain-service/internal/models"
)

type ProductsHandler struct {
	catalog    *catalog.Catalog
	reconciler *catalog.Reconciler
}

func NewProductsHandler(cat *catalog.Catalog, reconciler *catalog.Reconciler) *ProductsHandler {
	return &ProductsHandler{catalog: cat, reconciler: reconciler}
}

// resolvedText is the display-ready projection of a product in one language.
// Every field is non-empty whenever any variant of it is, per the fallback
// chain.
type resolvedText struct {
	Title            string             `json:"title"`
	ShortDescription string             `json:"shortDescription"`
	Description      string             `json:"description"`
	Badge            string             `json:"badge"`
	Price            string             `json:"price"`
	OriginalPrice    string             `json:"originalPrice"`
	Features         []string           `json:"features"`
	Image            string             `json:"image"`
	Media            []models.MediaItem `json:"media"`
}

// productView pairs the raw record with its resolved projection so legacy
// readers keep their fields and new readers never re-implement the chain.
type productView struct {
	models.Product
	Resolved resolvedText `json:"resolved"`
}

func newProductView(p models.Product, lang string) productView {
	price := models.ResolvePrice(&p, lang)
	return productView{
		Product: p,
		Resolved: resolvedText{
			Title:            models.ResolveTitle(&p, lang),
			ShortDescription: models.ResolveShortDescription(&p, lang),
			Description:      models.ResolveDescription(&p, lang),
			Badge:            models.ResolveBadge(&p, lang),
			Price:            price,
			OriginalPrice:    models.OriginalPrice(price),
			Features:         models.ResolveFeatures(&p, lang),
			Image:            p.FirstImageURL(),
			Media:            p.NormalizedMedia(),
		},
	}
}

// GetProducts lists the visible catalog resolved in the requested language
// @Summary List visible products
// @Tags storefront
// @Produce json
// @Param lang query string false "Display language (en or ar)"
// @Success 200 {object} models.SuccessResponse
// @Router /storefront/products [get]
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	lang := models.NormalizeLang(c.Query("lang"))

	products := h.catalog.VisibleProducts()
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p, lang))
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: views})
}

// GetProduct returns one product by id. Hidden seed products still resolve
// here; they are only excluded from listings.
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("INVALID_ID", "Product id must be an integer"))
		return
	}
	lang := models.NormalizeLang(c.Query("lang"))

	product, ok := h.catalog.Lookup(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.NewErrorResponse("NOT_FOUND", fmt.Sprintf("Product %d not found", id)))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: newProductView(product, lang)})
}

// GetSnapshot returns the raw catalog snapshot (removedIds + customProducts).
func (h *ProductsHandler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: h.catalog.Snapshot()})
}

// GetStatus reports the loading signal and catalog counts. Loading is true
// only while the cache seeded empty and the first reconciliation is still in
// flight — the one case where the storefront would otherwise show nothing.
func (h *ProductsHandler) GetStatus(c *gin.Context) {
	snap := h.catalog.Snapshot()
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data: gin.H{
			"loading":        h.catalog.Loading(),
			"customProducts": len(snap.CustomProducts),
			"removedIds":     len(snap.RemovedIDs),
		},
	})
}

// GetGovernorates lists the governorates offered at checkout with their
// shipping costs.
func (h *ProductsHandler) GetGovernorates(c *gin.Context) {
	type governorateView struct {
		models.Governorate
		Shipping float64 `json:"shipping"`
	}
	views := make([]governorateView, 0, len(models.Governorates))
	for _, g := range models.Governorates {
		views = append(views, governorateView{Governorate: g, Shipping: models.ShippingByGovernorate(g.ID)})
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: views})
}

// CreateProduct adds a product through the mutation API. Input is coerced,
// never rejected: the only hard failure is malformed JSON.
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var input models.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("VALIDATION_ERROR", err.Error()))
		return
	}

	product := h.catalog.Add(input)
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: product})
}

// UpdateProduct shallow-merges a patch onto a custom product. Seed-range ids
// are immutable and reported as such.
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("INVALID_ID", "Product id must be an integer"))
		return
	}

	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("VALIDATION_ERROR", err.Error()))
		return
	}

	product, ok := h.catalog.Update(id, patch)
	if !ok {
		if models.IsSeed(id) {
			c.JSON(http.StatusForbidden, models.NewErrorResponse("SEED_IMMUTABLE", fmt.Sprintf("Product %d is a baseline product and cannot be edited", id)))
			return
		}
		c.JSON(http.StatusNotFound, models.NewErrorResponse("NOT_FOUND", fmt.Sprintf("Product %d not found", id)))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: product})
}

// DeleteProduct removes a product: seed-range ids are hidden (recoverable),
// custom ids are deleted outright.
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("INVALID_ID", "Product id must be an integer"))
		return
	}

	h.catalog.Remove(id)

	message := "Product deleted"
	if models.IsSeed(id) {
		message = "Baseline product hidden"
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: message})
}

// ExportSnapshot downloads the publishable initial-products.json: all seed
// ids force-hidden, every visible product exported as customProducts. The
// operator commits the file to make the current catalog the durable source
// of truth.
func (h *ProductsHandler) ExportSnapshot(c *gin.Context) {
	snap := h.catalog.Export()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("EXPORT_FAILED", "Failed to serialize catalog"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="initial-products.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// ExportXLSX downloads the visible catalog as a spreadsheet for offline
// review.
func (h *ProductsHandler) ExportXLSX(c *gin.Context) {
	products := h.catalog.VisibleProducts()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Products"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Title (EN)", "Title (AR)", "Price", "Badge", "Short Description", "Media Count"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, p := range products {
		values := []interface{}{
			p.ID,
			models.ResolveTitle(&p, models.LangEN),
			models.ResolveTitle(&p, models.LangAR),
			models.ResolvePrice(&p, models.LangEN),
			models.ResolveBadge(&p, models.LangEN),
			models.ResolveShortDescription(&p, models.LangEN),
			len(p.NormalizedMedia()),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// SyncCatalog runs a reconciliation against the published snapshot on
// demand. Reconciliations are serialized, so concurrent syncs cannot
// interleave.
func (h *ProductsHandler) SyncCatalog(c *gin.Context) {
	if err := h.reconciler.Reconcile(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, models.NewErrorResponse("SYNC_FAILED", err.Error()))
		return
	}

	snap := h.catalog.Snapshot()
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data: gin.H{
			"customProducts": len(snap.CustomProducts),
			"removedIds":     len(snap.RemovedIDs),
		},
	})
}

// PurgeMedia strips media from every custom product to bring an oversized
// snapshot back under the store quota.
func (h *ProductsHandler) PurgeMedia(c *gin.Context) {
	touched := h.catalog.PurgeMedia()
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"touched": touched},
	})
}
