package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"evergrain-service/internal/models"
)

// EmailClient dispatches order and contact emails through an EmailJS-style
// transactional email API. There is no retry: dispatch failures surface
// verbatim to the submitting user, who resubmits.
type EmailClient struct {
	baseURL           string
	serviceID         string
	orderTemplateID   string
	contactTemplateID string
	publicKey         string
	recipient         string
	httpClient        *http.Client
}

// EmailConfig carries the EmailJS credentials and the shop-owner recipient
// address.
type EmailConfig struct {
	BaseURL           string
	ServiceID         string
	OrderTemplateID   string
	ContactTemplateID string
	PublicKey         string
	Recipient         string
}

// emailRequest is the EmailJS send payload.
type emailRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewEmailClient creates an email client. Missing credentials are allowed;
// sends will fail with a configuration error until they are set.
func NewEmailClient(cfg EmailConfig) *EmailClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.emailjs.com"
	}
	return &EmailClient{
		baseURL:           strings.TrimSuffix(baseURL, "/"),
		serviceID:         cfg.ServiceID,
		orderTemplateID:   cfg.OrderTemplateID,
		contactTemplateID: cfg.ContactTemplateID,
		publicKey:         cfg.PublicKey,
		recipient:         cfg.Recipient,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendOrderEmail dispatches the order confirmation to the shop owner.
func (c *EmailClient) SendOrderEmail(ctx context.Context, order *models.Order) error {
	if c.publicKey == "" || c.serviceID == "" || c.orderTemplateID == "" {
		return fmt.Errorf("email dispatch is not configured: set EMAILJS_PUBLIC_KEY, EMAILJS_SERVICE_ID and EMAILJS_ORDER_TEMPLATE_ID")
	}

	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("%s × %d — %.2f ج.م", item.Title, item.Quantity, item.LineTotal))
	}

	email := order.CustomerEmail
	if email == "" {
		email = "Not provided"
	}
	shipping := "Free"
	if order.Shipping > 0 {
		shipping = fmt.Sprintf("%.2f ج.م", order.Shipping)
	}

	body := fmt.Sprintf(`--- CUSTOMER DETAILS ---
Name: %s
Email: %s
Phone: %s
Location / Address: %s

--- ORDER ---
%s

Subtotal: %.2f ج.م
Shipping: %s
Total: %.2f ج.م`,
		order.CustomerName, email, order.CustomerPhone, order.CustomerLocation,
		strings.Join(lines, "\n"), order.Subtotal, shipping, order.Total)

	req := &emailRequest{
		ServiceID:  c.serviceID,
		TemplateID: c.orderTemplateID,
		UserID:     c.publicKey,
		TemplateParams: map[string]string{
			"to_email":          c.recipient,
			"subject":           "Evergrain - New Order",
			"message":           body,
			"customer_name":     order.CustomerName,
			"customer_email":    email,
			"customer_phone":    order.CustomerPhone,
			"customer_location": order.CustomerLocation,
			"order_total":       fmt.Sprintf("%.2f ج.م", order.Total),
		},
	}
	return c.send(ctx, req)
}

// SendContactEmail dispatches a contact-form message to the shop owner.
func (c *EmailClient) SendContactEmail(ctx context.Context, contact *models.ContactRequest) error {
	if c.publicKey == "" || c.serviceID == "" || c.contactTemplateID == "" {
		return fmt.Errorf("email dispatch is not configured: set EMAILJS_PUBLIC_KEY, EMAILJS_SERVICE_ID and EMAILJS_CONTACT_TEMPLATE_ID")
	}

	subject := contact.Subject
	if subject == "" {
		subject = "Message from Evergrain"
	}
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", contact.Name, contact.Email, contact.Message)

	req := &emailRequest{
		ServiceID:  c.serviceID,
		TemplateID: c.contactTemplateID,
		UserID:     c.publicKey,
		TemplateParams: map[string]string{
			"to_email":   c.recipient,
			"subject":    subject,
			"message":    body,
			"from_name":  contact.Name,
			"from_email": contact.Email,
		},
	}
	return c.send(ctx, req)
}

func (c *EmailClient) send(ctx context.Context, req *emailRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1.0/email/send", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}

	log.Printf("[EMAIL] Dispatched %s email", req.TemplateID)
	return nil
}
