package models

import "time"

// CheckoutRequest is the payload submitted from the checkout form. Email is
// optional; the original form collects name, phone and a free-text location
// plus the governorate used for the shipping quote.
type CheckoutRequest struct {
	CartID           string `json:"cartId" binding:"required"`
	CustomerName     string `json:"customerName" binding:"required"`
	CustomerEmail    string `json:"customerEmail"`
	CustomerPhone    string `json:"customerPhone" binding:"required"`
	CustomerLocation string `json:"customerLocation" binding:"required"`
	Governorate      string `json:"governorate"`
}

// OrderLine is one checkout line with the title resolved at order time.
type OrderLine struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     string  `json:"price"`
	LineTotal float64 `json:"lineTotal"`
}

// Order is the structured payload dispatched by email and echoed back to the
// customer after a successful checkout.
type Order struct {
	ID               string      `json:"id"`
	CustomerName     string      `json:"customerName"`
	CustomerEmail    string      `json:"customerEmail,omitempty"`
	CustomerPhone    string      `json:"customerPhone"`
	CustomerLocation string      `json:"customerLocation"`
	Governorate      string      `json:"governorate,omitempty"`
	Items            []OrderLine `json:"items"`
	Subtotal         float64     `json:"subtotal"`
	Shipping         float64     `json:"shipping"`
	Total            float64     `json:"total"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// ContactRequest is the payload from the contact form.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}
