package stripeutil

import (
	"errors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"fraccio/pkg/config"
)

// ErrNotConfigured is returned when the Stripe secret key is missing.
var ErrNotConfigured = errors.New("stripe secret key is not configured")

// CheckoutParams describes one hosted checkout session. Amount is in minor
// currency units.
type CheckoutParams struct {
	Name        string
	Description string
	Amount      int64
	Currency    string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutSession is the subset of the created session the caller needs.
type CheckoutSession struct {
	ID  string
	URL string
}

// Client wraps the Stripe SDK for checkout creation and webhook
// verification.
type Client struct {
	api           *client.API
	webhookSecret string
}

// New builds a client from config. The client is usable for webhook
// verification even without a secret key; checkout creation requires one.
func New(cfg *config.StripeConfig) *Client {
	c := &Client{webhookSecret: cfg.WebhookSecret}
	if cfg.SecretKey != "" {
		c.api = &client.API{}
		c.api.Init(cfg.SecretKey, nil)
	}
	return c
}

// CreateCheckoutSession creates a hosted checkout page for a single line
// item and returns its id and redirect URL.
func (c *Client) CreateCheckoutSession(p CheckoutParams) (*CheckoutSession, error) {
	if c.api == nil {
		return nil, ErrNotConfigured
	}

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(p.Name),
	}
	if p.Description != "" {
		productData.Description = stripe.String(p.Description)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(p.Currency),
					ProductData: productData,
					UnitAmount:  stripe.Int64(p.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// VerifyEvent checks the signature header over the raw payload and returns
// the parsed event. This is the sole authentication mechanism for the
// webhook endpoint.
func (c *Client) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
}

// WebhookConfigured reports whether a webhook verification secret is set.
func (c *Client) WebhookConfigured() bool {
	return c.webhookSecret != ""
}
