package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"evergrain-service/internal/models"
)

// MediaHandler is a same-origin proxy for Google Drive files. Browsers block
// cross-origin Drive content (Safari, Firefox), so product media referencing
// Drive is served through here with a server-held API key. Range headers pass
// through both ways so video seeking works.
type MediaHandler struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewMediaHandler creates a media proxy. An empty apiKey is allowed; requests
// will answer 503 until it is configured.
func NewMediaHandler(apiKey string) *MediaHandler {
	return &MediaHandler{
		apiKey:  apiKey,
		baseURL: "https://www.googleapis.com/drive/v3/files",
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GetMedia proxies one Drive file by id. Upstream non-2xx statuses map to a
// JSON error with the same status code.
func (h *MediaHandler) GetMedia(c *gin.Context) {
	fileID := c.Query("id")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("MISSING_ID", "Missing id parameter"))
		return
	}

	if h.apiKey == "" {
		c.JSON(http.StatusServiceUnavailable, models.NewErrorResponse("NOT_CONFIGURED", "Media proxy is not configured. Set GOOGLE_DRIVE_API_KEY."))
		return
	}

	url := fmt.Sprintf("%s/%s?alt=media&key=%s", h.baseURL, fileID, h.apiKey)
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, url, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("PROXY_ERROR", "Failed to create upstream request"))
		return
	}
	req.Header.Set("User-Agent", "Evergrain/1.0")
	if rangeHeader := c.GetHeader("Range"); rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.NewErrorResponse("UPSTREAM_ERROR", "Failed to fetch from Drive"))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.JSON(resp.StatusCode, models.NewErrorResponse("UPSTREAM_ERROR", fmt.Sprintf("Drive API error: %d", resp.StatusCode)))
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=3600")
	for _, header := range []string{"Content-Length", "Content-Range", "Accept-Ranges"} {
		if value := resp.Header.Get(header); value != "" {
			c.Header(header, value)
		}
	}

	c.Status(resp.StatusCode)
	// Headers are already out; a mid-stream copy error just aborts the body.
	_, _ = io.Copy(c.Writer, resp.Body)
}
