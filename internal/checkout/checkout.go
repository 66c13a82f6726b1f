// Package checkout creates Stripe payment sessions for paid events.
package checkout

import (
	"errors"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Stripe's floor for a GBP charge.
const MinAmountPence = 50

var (
	ErrNotConfigured  = errors.New("stripe is not configured")
	ErrAmountTooSmall = errors.New("amount below minimum charge")
)

type Client struct {
	api         *client.API
	frontendURL string
}

// New returns a checkout client. An empty secret key yields a client whose
// CreateSession always fails with ErrNotConfigured.
func New(secretKey, frontendURL string) *Client {
	c := &Client{frontendURL: frontendURL}

	if secretKey != "" {
		c.api = &client.API{}
		c.api.Init(secretKey, nil)
	}

	return c
}

func (c *Client) Configured() bool {
	return c.api != nil
}

// CreateSession opens a one-off GBP payment session and returns the hosted
// checkout URL the client should redirect to.
func (c *Client) CreateSession(eventTitle string, amountPence int64) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}

	if amountPence < MinAmountPence {
		return "", ErrAmountTooSmall
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyGBP)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(eventTitle),
				},
				UnitAmount: stripe.Int64(amountPence),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(c.frontendURL + "/thanks?ok=1"),
		CancelURL:  stripe.String(c.frontendURL + "/thanks?cancel=1"),
	}

	s, err := c.api.CheckoutSessions.New(params)

	if err != nil {
		return "", err
	}

	return s.URL, nil
}
